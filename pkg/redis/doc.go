// Package redis connects to a Redis server with retries and exposes a health
// check for readiness probes.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	ping := redis.Healthcheck(client)
//
// Sentinel errors (ErrRedisNotReady and friends) are joined with the driver
// error, so errors.Is works on the returned values.
package redis
