package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/legit-games/catalog-service/dto"
)

// HandleListClientsGin pages clients. Query: page, linesPerPage, direction (ASC|DESC), orderBy (default name).
func (s *Server) HandleListClientsGin(c *gin.Context) {
	page, err := s.Clients.Page(c.Request.Context(), clientPageable(c))
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromPage(page, dto.FromClient))
}

func (s *Server) HandleGetClientGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	cl, err := s.Clients.FindByID(c.Request.Context(), id)
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromClient(*cl))
}

func (s *Server) HandleCreateClientGin(c *gin.Context) {
	var req dto.ClientRequest
	if !s.bindJSON(c, &req) {
		return
	}
	cl := req.ToModel()
	if err := s.Clients.Insert(c.Request.Context(), cl); err != nil {
		s.handleResourceError(c, err)
		return
	}
	s.created(c, cl.ID, dto.FromClient(*cl))
}

func (s *Server) HandleUpdateClientGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	var req dto.ClientRequest
	if !s.bindJSON(c, &req) {
		return
	}
	cl, err := s.Clients.Update(c.Request.Context(), id, req.ToModel())
	if err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromClient(*cl))
}

func (s *Server) HandleDeleteClientGin(c *gin.Context) {
	id, ok := s.pathID(c)
	if !ok {
		return
	}
	if err := s.Clients.Delete(c.Request.Context(), id); err != nil {
		s.handleResourceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
