// Package mongo connects to MongoDB with retries and exposes a health check.
//
// Configuration comes from the environment. MONGODB_URL wins when set;
// otherwise the URI is assembled from DB_HOST and DB_PORT. DB_DATABASE names
// the database returned by NewWithDatabase.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	ping := mongo.Healthcheck(db.Client())
//
// Connection failures are joined with ErrFailedToConnectToMongo so callers can
// test them with errors.Is.
package mongo
