package api

import (
	"net/http"

	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
)

type memberJSON struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
}

type groupJSON struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Members   []memberJSON `json:"members"`
	CreatedAt int64        `json:"created_at"`
}

func toGroupJSON(g *models.Group) groupJSON {
	out := groupJSON{ID: g.ID, Name: g.Name, CreatedAt: g.CreatedAt}
	for _, m := range g.Members {
		out.Members = append(out.Members, memberJSON{UserID: m.UserID, Name: m.Name})
	}
	return out
}

type createGroupRequest struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	group, err := s.groups.CreateGroup(r.Context(), req.Name, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupJSON(group))
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.ListGroups(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]groupJSON, 0, len(groups))
	for _, g := range groups {
		out = append(out, toGroupJSON(g))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.GetGroup(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupJSON(group))
}

type addMembersRequest struct {
	Members []string `json:"members"`
}

func (s *Server) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	var req addMembersRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	group, err := s.groups.AddMembers(r.Context(), r.PathValue("id"), req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupJSON(group))
}
