package server

import (
	"net/http"

	"github.com/jrsteele09/go-gym-server/internal/utils"
	"github.com/jrsteele09/go-gym-server/memberships"
)

func (s *Server) ListMembershipsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		types, err := s.deps.Memberships.List(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, types)
	}
}

func (s *Server) GetMembershipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := s.deps.Memberships.Get(r.Context(), r.PathValue("sign"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func (s *Server) CreateMembershipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var t memberships.Type
		if err := decodeJSON(w, r, &t); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := t.Validate(); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.deps.Memberships.Insert(r.Context(), &t); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)
	}
}

func (s *Server) UpdateMembershipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update memberships.Update
		if err := decodeJSON(w, r, &update); err != nil {
			s.writeError(w, r, err)
			return
		}
		t, err := s.deps.Memberships.Get(r.Context(), r.PathValue("sign"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		utils.Assign(&t.Fee, update.Fee)
		utils.Assign(&t.TypeName, update.TypeName)
		utils.Assign(&t.Plan, update.Plan)
		if err := t.Validate(); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := s.deps.Memberships.Update(r.Context(), t); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, t)
	}
}

func (s *Server) DeleteMembershipHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Memberships.Delete(r.Context(), r.PathValue("sign")); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "membership deleted")
	}
}
