// Package file stores uploaded file content.
//
// Storage is addressed by locators: absolute paths for LocalStorage and
// object keys for S3Storage. Callers keep the locator in their metadata and
// derive related blobs by suffixing it (thumbnails live at "<locator>_100").
//
//	var cfg file.Config
//	config.MustLoad(&cfg)
//	store, err := file.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	loc := store.Path(uuid.NewString())
//	if err := store.Put(ctx, loc, bytes.NewReader(data)); err != nil {
//	    return err
//	}
//
// STORAGE_DRIVER selects the backend ("local" or "s3"). The local driver
// writes below FOLDER_PATH and rejects locators outside of it.
//
// Missing blobs are reported as ErrFileNotFound by both drivers.
package file
