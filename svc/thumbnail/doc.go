// Package thumbnail renders the 500, 250 and 100 pixel wide variants of
// uploaded images. It runs in the worker process as the handler of
// files.ThumbnailJob:
//
//	gen := thumbnail.NewGenerator(fileRecords, blobs, thumbnail.WithLogger(log))
//	worker.RegisterHandlers(gen.Handler())
//
// PNG, JPEG, GIF, BMP and WebP sources are supported. Variants keep the
// source format, WebP variants are written as PNG.
package thumbnail
