package server

import (
	"net/http"

	apperrors "github.com/jrsteele09/go-gym-server/internal/errors"
	"github.com/jrsteele09/go-gym-server/internal/utils"
	"github.com/jrsteele09/go-gym-server/memberships"
	"github.com/jrsteele09/go-gym-server/users"
)

func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := s.deps.Users.List(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.deps.Users.Get(r.Context(), r.PathValue("ssn"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// UpdateUserHandler applies an admin edit. An empty membershipType clears the
// membership; any other value must name a stored plan. The edit is written in
// one update, after every field including the password has been checked.
func (s *Server) UpdateUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var update users.Update
		if err := decodeJSON(w, r, &update); err != nil {
			s.writeError(w, r, err)
			return
		}
		user, err := s.deps.Users.Get(r.Context(), r.PathValue("ssn"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		utils.Assign(&user.FirstName, update.FirstName)
		utils.Assign(&user.LastName, update.LastName)
		utils.Assign(&user.MembershipType, update.MembershipType)

		if err := validateNames(user.FirstName, user.LastName); err != nil {
			s.writeError(w, r, err)
			return
		}
		if user.MembershipType != "" {
			ok, err := memberships.Exists(r.Context(), s.deps.Memberships, user.MembershipType)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			if !ok {
				s.writeError(w, r, apperrors.Wrapf(apperrors.ErrInvalidReference, "membership type %q", user.MembershipType))
				return
			}
		}
		if err := s.deps.Credentials.Save(r.Context(), user, update.Password); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

func validateNames(first, last string) error {
	if err := users.ValidateName("firstName", first); err != nil {
		return err
	}
	return users.ValidateName("lastName", last)
}

func (s *Server) DeleteUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Users.Delete(r.Context(), r.PathValue("ssn")); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "user deleted")
	}
}

func (s *Server) ListPhonesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phones, err := s.deps.Phones.List(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, phones)
	}
}

func (s *Server) GetPhoneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		phone, err := s.deps.Phones.Get(r.Context(), r.PathValue("phone"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, phone)
	}
}

// CreatePhoneHandler adds a number. The owner defaults to the caller.
func (s *Server) CreatePhoneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var phone users.Phone
		if err := decodeJSON(w, r, &phone); err != nil {
			s.writeError(w, r, err)
			return
		}
		if phone.UserSSN == "" {
			phone.UserSSN = caller(r).SSN
		}
		if err := users.ValidatePhone(phone.Number); err != nil {
			s.writeError(w, r, err)
			return
		}
		if _, err := s.deps.Users.Get(r.Context(), phone.UserSSN); err != nil {
			if apperrors.Is(err, apperrors.ErrNotFound) {
				err = apperrors.Wrapf(apperrors.ErrInvalidReference, "user %s", phone.UserSSN)
			}
			s.writeError(w, r, err)
			return
		}
		if err := s.deps.Phones.Insert(r.Context(), &phone); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, phone)
	}
}

func (s *Server) DeletePhoneHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.deps.Phones.Delete(r.Context(), r.PathValue("phone")); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, "phone deleted")
	}
}
