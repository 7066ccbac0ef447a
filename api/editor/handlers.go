package editor

import (
	"github.com/gin-gonic/gin"
	"github.com/killallgit/scriptify/api/types"
)

// Get returns the editor mode and scratch text
// @Summary      Get editor state
// @Tags         editor
// @Produce      json
// @Success      200 {object} types.EditorResponse
// @Router       /api/v1/editor [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, types.EditorResponse{BaseResponse: types.OK(""), Editor: deps.Workspace.Editor().State()})
	}
}

// Edit enters editing mode with a scratch copy of the transcript
// @Summary      Start editing
// @Tags         editor
// @Produce      json
// @Success      200 {object} types.EditorResponse
// @Router       /api/v1/editor/edit [post]
func Edit(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, types.EditorResponse{BaseResponse: types.OK("Editing"), Editor: deps.Workspace.Editor().Edit()})
	}
}

// Update replaces the scratch text
// @Summary      Update scratch text
// @Tags         editor
// @Accept       json
// @Produce      json
// @Param        request body types.EditorUpdateRequest true "Scratch text"
// @Success      200 {object} types.EditorResponse
// @Failure      400 {object} types.ErrorResponse "Editor is not in editing mode"
// @Router       /api/v1/editor [put]
func Update(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.EditorUpdateRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		ed := deps.Workspace.Editor()
		if err := ed.Update(req.Text); err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.EditorResponse{BaseResponse: types.OK(""), Editor: ed.State()})
	}
}

// Save writes the scratch text to the transcript and the current session
// @Summary      Save edits
// @Tags         editor
// @Produce      json
// @Success      200 {object} types.EditorResponse
// @Router       /api/v1/editor/save [post]
func Save(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		state, err := deps.Workspace.SaveEditor(c.Request.Context())
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.EditorResponse{BaseResponse: types.OK("Saved"), Editor: state})
	}
}

// Cancel discards the scratch text
// @Summary      Cancel editing
// @Tags         editor
// @Produce      json
// @Success      200 {object} types.EditorResponse
// @Router       /api/v1/editor/cancel [post]
func Cancel(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		types.SendSuccess(c, types.EditorResponse{BaseResponse: types.OK("Cancelled"), Editor: deps.Workspace.Editor().Cancel()})
	}
}
