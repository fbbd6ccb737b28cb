// Package files stores file and folder records and decides who may read them.
//
// Records live in a Storage (MongoDB in production) and their bytes in a
// file.Storage. Create writes the bytes first, then the record, then
// enqueues a ThumbnailJob for images. Every operation but Content requires
// an owner; Content also serves public records to anyone:
//
//	svc := files.NewService(files.NewMongoStorage(db), blobs, files.WithEnqueuer(enqueuer))
//	view, err := svc.Create(ctx, userID, files.CreateInput{Name: "a.png", Type: files.KindImage, Data: b64})
//	page, err := svc.Index(ctx, userID, files.Root, "0")
//	content, err := svc.Content(ctx, "", view.ID, "250")
//
// Listing returns DefaultPageSize records per zero based page, oldest first.
package files
