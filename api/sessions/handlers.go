package sessions

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
)

// List returns every session in creation order
// @Summary      List sessions
// @Tags         sessions
// @Produce      json
// @Success      200 {object} types.SessionsResponse
// @Router       /api/v1/sessions [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := deps.Workspace.Store()
		list := store.Sessions()

		response := types.SessionsResponse{
			BaseResponse: types.OK(""),
			Sessions:     list,
			Count:        len(list),
		}
		if current := store.Current(); current != nil {
			response.CurrentID = current.ID
		}
		types.SendSuccess(c, response)
	}
}

// Create starts a new session and makes it current
// @Summary      Create session
// @Description  Creates an empty session and makes it current. An empty title is numbered automatically.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request body types.CreateSessionRequest false "Session title"
// @Success      201 {object} types.SessionResponse
// @Router       /api/v1/sessions [post]
func Create(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CreateSessionRequest
		if c.Request.ContentLength > 0 && !types.BindJSONOrError(c, &req) {
			return
		}

		session, err := deps.Workspace.CreateSession(c.Request.Context(), req.Title)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendCreated(c, types.SessionResponse{BaseResponse: types.OK("Session created"), Session: session})
	}
}

// Reset removes every session
// @Summary      Delete all sessions
// @Tags         sessions
// @Produce      json
// @Success      200 {object} types.BaseResponse
// @Router       /api/v1/sessions [delete]
func Reset(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Workspace.ResetSessions(c.Request.Context()); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.OK("All sessions deleted"))
	}
}

// Get returns one session
// @Summary      Get session
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} types.SessionResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/sessions/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := deps.Workspace.Store().Session(c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.SessionResponse{BaseResponse: types.OK(""), Session: session})
	}
}

// Rename changes a session title
// @Summary      Rename session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body types.UpdateSessionRequest true "New title"
// @Success      200 {object} types.SessionResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/sessions/{id} [patch]
func Rename(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.UpdateSessionRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		session, err := deps.Workspace.Store().RenameSession(c.Request.Context(), c.Param("id"), req.Title)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.SessionResponse{BaseResponse: types.OK("Session renamed"), Session: session})
	}
}

// Delete removes a session. Deleting the current session promotes the first remaining one.
// @Summary      Delete session
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} types.SessionsResponse
// @Router       /api/v1/sessions/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := deps.Workspace.DeleteSession(c.Request.Context(), c.Param("id")); err != nil {
			types.SendError(c, err)
			return
		}
		List(deps)(c)
	}
}

// Select makes a session current and loads its transcript
// @Summary      Select session
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} types.SessionResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/sessions/{id}/select [post]
func Select(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := deps.Workspace.SelectSession(c.Request.Context(), c.Param("id"))
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.SessionResponse{BaseResponse: types.OK("Session selected"), Session: session})
	}
}

// Commit writes text into a session
// @Summary      Commit transcript to session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id path string true "Session ID"
// @Param        request body types.CommitRequest true "Transcript text"
// @Success      200 {object} types.SessionResponse
// @Failure      404 {object} types.ErrorResponse
// @Router       /api/v1/sessions/{id}/transcript [put]
func Commit(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.CommitRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		session, err := deps.Workspace.Store().CommitToSession(c.Request.Context(), c.Param("id"), req.Text)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.SessionResponse{BaseResponse: types.OK("Transcript committed"), Session: session})
	}
}

// GetPreferences returns stored user defaults
// @Summary      Get preferences
// @Tags         preferences
// @Produce      json
// @Success      200 {object} types.PreferencesResponse
// @Router       /api/v1/preferences [get]
func GetPreferences(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, types.PreferencesResponse{
			BaseResponse: types.OK(""),
			Preferences:  deps.Workspace.Store().Preferences(),
		})
	}
}

// PutPreferences replaces stored user defaults
// @Summary      Update preferences
// @Description  auto_save_interval accepts 0, 30, 60 or 300 seconds.
// @Tags         preferences
// @Accept       json
// @Produce      json
// @Param        request body types.PreferencesRequest true "Preferences"
// @Success      200 {object} types.PreferencesResponse
// @Failure      400 {object} types.ErrorResponse
// @Router       /api/v1/preferences [put]
func PutPreferences(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.PreferencesRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}
		switch req.AutoSaveInterval {
		case 0, 30, 60, 300:
		default:
			types.SendBadRequest(c, "auto_save_interval must be one of 0, 30, 60, 300")
			return
		}

		store := deps.Workspace.Store()
		if err := store.SetPreferences(c.Request.Context(), req); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.PreferencesResponse{
			BaseResponse: types.OK("Preferences saved"),
			Preferences:  store.Preferences(),
		})
	}
}
