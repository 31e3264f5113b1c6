package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/groupspend/groupspend/internal/server/models"
)

func (s *Server) handleLogin(c *gin.Context) {
	var req struct {
		Username string `form:"username" binding:"required"`
		Password string `form:"password" binding:"required"`
	}
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "username and password are required")
		return
	}

	token, err := s.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (s *Server) handleCreateUser(c *gin.Context) {
	var req struct {
		Username  string `json:"username" binding:"required"`
		Password  string `json:"password" binding:"required"`
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	userID, err := s.auth.Register(c.Request.Context(), req.Username, req.Password, req.FirstName, req.LastName, req.Email)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": userID})
}

func (s *Server) handleGetUsers(c *gin.Context) {
	users, err := s.users.GetUsers(c.Request.Context())
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) handleGetGroups(c *gin.Context) {
	groups, err := s.groups.GetGroups(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (s *Server) handleCreateGroup(c *gin.Context) {
	var req struct {
		Name    string  `json:"name" binding:"required"`
		Members []int64 `json:"members"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	groupID, err := s.groups.CreateGroup(c.Request.Context(), currentUser(c).ID, req.Name, req.Members)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": groupID})
}

func (s *Server) handleGetGroupMembers(c *gin.Context) {
	groupID, ok := pathID(c)
	if !ok {
		return
	}

	members, err := s.groups.GetGroupMembers(c.Request.Context(), currentUser(c).ID, groupID)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, members)
}

func (s *Server) handleAddGroupMember(c *gin.Context) {
	groupID, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		UserID int64 `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := s.groups.AddMember(c.Request.Context(), currentUser(c).ID, groupID, req.UserID); err != nil {
		s.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"added": true})
}

func (s *Server) handleGetExpenses(c *gin.Context) {
	groupID, ok := pathID(c)
	if !ok {
		return
	}

	createdBefore, ok := timeQuery(c, "created_before")
	if !ok {
		return
	}
	createdAfter, ok := timeQuery(c, "created_after")
	if !ok {
		return
	}

	expenses, err := s.expenses.GetExpensesByGroup(c.Request.Context(), currentUser(c).ID, groupID, createdBefore, createdAfter)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, expenses)
}

func (s *Server) handleCreateExpense(c *gin.Context) {
	groupID, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string  `json:"title" binding:"required"`
		Price       float64 `json:"price" binding:"required"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	expenseID, err := s.expenses.CreateExpense(c.Request.Context(), currentUser(c).ID, groupID, req.Title, req.Price, req.Description)
	if err != nil {
		s.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": expenseID})
}

func (s *Server) handleUpdateExpense(c *gin.Context) {
	expenseID, ok := pathID(c)
	if !ok {
		return
	}

	var req struct {
		Title       *string  `json:"title"`
		Price       *float64 `json:"price"`
		Description *string  `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	upd := &models.ExpenseUpdate{Title: req.Title, Price: req.Price, Description: req.Description}
	if err := s.expenses.UpdateExpense(c.Request.Context(), currentUser(c).ID, expenseID, upd); err != nil {
		s.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (s *Server) handleDeleteExpense(c *gin.Context) {
	expenseID, ok := pathID(c)
	if !ok {
		return
	}

	if err := s.expenses.DeleteExpense(c.Request.Context(), currentUser(c).ID, expenseID); err != nil {
		s.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// pathID parses the :id path parameter; on failure it writes a 400 response
// and returns ok=false.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
		return 0, false
	}
	return id, true
}

// timeQuery parses an optional RFC 3339 query parameter; on failure it writes
// a 400 response and returns ok=false.
func timeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid "+name)
		return nil, false
	}
	return &t, true
}
