package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/legit-games/catalog-service/dto"
	"github.com/legit-games/catalog-service/store"
)

// checkEmailUnique is the duplicate e-mail guard for user writes. exceptID is the
// user being updated, or 0 on insert.
func (s *Server) checkEmailUnique(ctx context.Context, email string, exceptID int64) ([]dto.FieldMessage, error) {
	taken, err := s.Users.EmailTaken(ctx, email, exceptID)
	if err != nil {
		return nil, err
	}
	if taken {
		return []dto.FieldMessage{{FieldName: "email", Message: "Email already exists"}}, nil
	}
	return nil, nil
}

// HandleListUsersGin pages users. Query: page, size, sort.
func (s *Server) HandleListUsersGin(c *gin.Context) {
	page, err := s.Users.Page(c.Request.Context(), pageable(c, store.Order{Property: "firstName"}))
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPage(page, dto.FromUser))
}

func (s *Server) HandleGetUserGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	u, err := s.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(*u))
}

// HandleCreateUserGin registers a user with a hashed password and the given roles.
func (s *Server) HandleCreateUserGin(c *gin.Context) {
	ctx := c.Request.Context()
	var req dto.UserInsertRequest
	if !s.bindJSON(c, &req) {
		return
	}
	u := req.ToModel()
	fields, err := s.checkEmailUnique(ctx, u.Email, 0)
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	if len(fields) > 0 {
		s.validationError(c, fields)
		return
	}

	hash, err := s.Encoder.Encode(req.Password)
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	u.Password = hash
	if err := s.Users.Insert(ctx, u, req.RoleIDs()); err != nil {
		s.handleResourceError(c, err)
		return
	}
	s.Logger.InfoContext(ctx, "user created", "user_id", u.ID)
	s.created(c, u.ID, dto.FromUser(*u))
}

// HandleUpdateUserGin replaces name, e-mail and roles. The password is not changed here.
func (s *Server) HandleUpdateUserGin(c *gin.Context) {
	ctx := c.Request.Context()
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	var req dto.UserUpdateRequest
	if !s.bindJSON(c, &req) {
		return
	}
	in := req.ToModel()
	fields, err := s.checkEmailUnique(ctx, in.Email, id)
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	if len(fields) > 0 {
		s.validationError(c, fields)
		return
	}

	u, err := s.Users.Update(ctx, id, in, req.RoleIDs())
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(*u))
}

func (s *Server) HandleDeleteUserGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	if err := s.Users.Delete(c.Request.Context(), id); err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
