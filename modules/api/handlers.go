package api

import (
	"net/http"

	"github.com/dmitrymomot/filemanager/handler"
	"github.com/dmitrymomot/filemanager/svc/auth"
	"github.com/dmitrymomot/filemanager/svc/files"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ConnectRequest struct {
	Authorization string `header:"Authorization"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type FileRequest struct {
	ID string `path:"id"`
}

type FileDataRequest struct {
	ID   string `path:"id"`
	Size string `query:"size"`
}

type ListFilesRequest struct {
	ParentID files.ParentID `query:"parentId"`
	Page     string         `query:"page"`
}

func (a *api) getStatus(ctx handler.Context, _ struct{}) handler.Response {
	return handler.JSON(a.status.Status(ctx))
}

func (a *api) getStats(ctx handler.Context, _ struct{}) handler.Response {
	st, err := a.status.Stats(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(st)
}

func (a *api) register(ctx handler.Context, req RegisterRequest) handler.Response {
	user, err := a.auth.Register(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(user, handler.WithJSONStatus(http.StatusCreated))
}

func (a *api) connect(ctx handler.Context, req ConnectRequest) handler.Response {
	token, err := a.auth.Connect(ctx, req.Authorization)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(TokenResponse{Token: token})
}

// disconnect runs behind requireUser, so the token has already been resolved.
func (a *api) disconnect(ctx handler.Context, _ struct{}) handler.Response {
	if err := a.auth.Disconnect(ctx, a.gate.Token(ctx.Request())); err != nil {
		return handler.Error(err)
	}
	return handler.Empty()
}

func (a *api) me(ctx handler.Context, _ struct{}) handler.Response {
	user, err := a.auth.Me(ctx, auth.UserIDFromContext(ctx))
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(user)
}

func (a *api) createFile(ctx handler.Context, req files.CreateInput) handler.Response {
	view, err := a.files.Create(ctx, auth.UserIDFromContext(ctx), req)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(view, handler.WithJSONStatus(http.StatusCreated))
}

func (a *api) showFile(ctx handler.Context, req FileRequest) handler.Response {
	view, err := a.files.Show(ctx, auth.UserIDFromContext(ctx), req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(view)
}

func (a *api) listFiles(ctx handler.Context, req ListFilesRequest) handler.Response {
	list, err := a.files.Index(ctx, auth.UserIDFromContext(ctx), req.ParentID, req.Page)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(list)
}

func (a *api) publishFile(ctx handler.Context, req FileRequest) handler.Response {
	view, err := a.files.Publish(ctx, auth.UserIDFromContext(ctx), req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(view)
}

func (a *api) unpublishFile(ctx handler.Context, req FileRequest) handler.Response {
	view, err := a.files.Unpublish(ctx, auth.UserIDFromContext(ctx), req.ID)
	if err != nil {
		return handler.Error(err)
	}
	return handler.JSON(view)
}

func (a *api) fileData(ctx handler.Context, req FileDataRequest) handler.Response {
	content, err := a.files.Content(ctx, auth.UserIDFromContext(ctx), req.ID, req.Size)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Stream(content.MIMEType, content.Body)
}
