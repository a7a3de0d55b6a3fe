// Package apitest hosts an in-process fake of the findcourse API so
// command and service tests can run end-to-end without the network.
// Routing, bearer middleware, and password handling follow the real
// server conventions; state lives in memory and dies with the test.
package apitest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"findcourse/internal/model"
)

const (
	signingSecret = "apitest-secret"

	// FixedOTP is the code "emailed" to every registering user.
	FixedOTP = "123456"
)

type userRec struct {
	model.User
	passwordHash []byte
	verified     bool
	otpSent      bool
}

// Server is the fake API plus its seedable state.
type Server struct {
	HTTP *httptest.Server

	mu         sync.Mutex
	nextID     int64
	users      map[string]*userRec // by email
	refresh    map[string]int64    // refresh token -> user id
	centers    []model.Center
	regions    []model.Region
	majors     []model.Major
	filials    []model.Branch
	categories []model.Category
	comments   []model.Comment
	likes      []model.LikedItem
	receptions []model.Reception
	images     map[string][]byte
	requests   []string
}

// New starts the fake API. Callers own the returned server and must
// Close it (t.Cleanup is the usual place).
func New() *Server {
	s := &Server{
		nextID:  1000,
		users:   map[string]*userRec{},
		refresh: map[string]int64{},
		images:  map[string][]byte{},
	}
	s.HTTP = httptest.NewServer(s.router())
	return s
}

// Close shuts the underlying test server down.
func (s *Server) Close() { s.HTTP.Close() }

// URL is the API base the client should be pointed at.
func (s *Server) URL() string { return s.HTTP.URL }

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(s.recordRequests)

	r.Post("/users/register", s.handleRegister)
	r.Post("/users/send-otp", s.handleSendOTP)
	r.Post("/users/verify-otp", s.handleVerifyOTP)
	r.Post("/users/login", s.handleLogin)
	r.Post("/users/refreshToken", s.handleRefresh)

	r.Get("/centers", s.handleCenters)
	r.Get("/centers/{id}", s.handleCenterDetail)
	r.Get("/categories", s.handleCategories)
	r.Get("/major", s.handleMajors)
	r.Get("/regions/search", s.handleRegions)
	r.Get("/filials", s.handleFilials)
	r.Get("/image/{name}", s.handleImage)
	r.Post("/reseption", s.handleBook)

	// bearer-protected routes
	r.Group(func(r chi.Router) {
		r.Use(s.withAuth)
		r.Get("/users/mydata", s.handleMydata)
		r.Get("/users/mycenters", s.handleMyCenters)
		r.Patch("/users/{id}", s.handleUserPatch)
		r.Delete("/users/{id}", s.handleUserDelete)
		r.Post("/centers", s.handleCenterCreate)
		r.Patch("/centers/{id}", s.handleCenterPatch)
		r.Delete("/centers/{id}", s.handleCenterDelete)
		r.Post("/resources", s.handleResourceCreate)
		r.Delete("/resources/{id}", s.handleResourceDelete)
		r.Post("/comments", s.handleCommentCreate)
		r.Patch("/comments/{id}", s.handleCommentPatch)
		r.Delete("/comments/{id}", s.handleCommentDelete)
		r.Post("/liked", s.handleLikeCreate)
		r.Delete("/liked/{id}", s.handleLikeDelete)
		r.Delete("/reseption/{id}", s.handleBookingDelete)
		r.Post("/upload", s.handleUpload)
	})

	return r
}

// recordRequests keeps a method+path log so tests can assert which
// calls were (or were not) issued.
func (s *Server) recordRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// Requests returns a copy of the request log.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// ResetRequests clears the request log between test phases.
func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

type ctxKey int

const userKey ctxKey = 1

func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// POST /reseption also lives outside this group; everything
		// here requires a valid bearer token
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		uid, ok := s.parseToken(raw)
		if raw == "" || !ok {
			writeErr(w, http.StatusUnauthorized, "authorization required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, uid)))
	})
}

func sessionUser(r *http.Request) int64 {
	uid, _ := r.Context().Value(userKey).(int64)
	return uid
}

func (s *Server) mintAccessToken(u *userRec) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    u.ID,
		"email": u.Email,
		"role":  u.Role,
	})
	signed, _ := tok.SignedString([]byte(signingSecret))
	return signed
}

func (s *Server) parseToken(raw string) (int64, bool) {
	if raw == "" {
		return 0, false
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return []byte(signingSecret), nil
	})
	if err != nil || !tok.Valid {
		return 0, false
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, false
	}
	id, ok := claims["id"].(float64)
	return int64(id), ok
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, map[string]any{"data": v})
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id
}

// --- seeding helpers ---

// SeedUser registers a verified user directly and returns its record.
func (s *Server) SeedUser(firstName, lastName, email, password, role string) model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	u := &userRec{
		User: model.User{
			ID: s.id(), FirstName: firstName, LastName: lastName,
			Email: email, Phone: "+998900000000", Role: role, IsActive: true,
		},
		passwordHash: hash,
		verified:     true,
	}
	s.users[email] = u
	return u.User
}

// AccessTokenFor mints a valid access token for a seeded user, letting
// tests establish a session without walking the login flow.
func (s *Server) AccessTokenFor(email string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return ""
	}
	return s.mintAccessToken(u)
}

// SeedCenter adds a center owned by ownerID and returns it.
func (s *Server) SeedCenter(name, address, phone string, regionID, ownerID int64, majors ...model.Major) model.Center {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Center{
		ID: s.id(), Name: name, Address: address, Phone: phone,
		RegionID: regionID, Region: s.regionByID(regionID),
		Majors: majors, UserID: ownerID,
	}
	s.centers = append(s.centers, c)
	return c
}

// SeedRegions replaces the regions reference collection.
func (s *Server) SeedRegions(regions ...model.Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions = regions
}

// SeedMajors replaces the majors reference collection.
func (s *Server) SeedMajors(majors ...model.Major) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.majors = majors
}

// SeedFilials replaces the filials reference collection.
func (s *Server) SeedFilials(filials ...model.Branch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filials = filials
}

// SeedCategory adds a category with its resources.
func (s *Server) SeedCategory(name string, resources ...model.Resource) model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	cat := model.Category{ID: s.id(), Name: name}
	for _, res := range resources {
		res.ID = s.id()
		res.CategoryID = cat.ID
		cat.Resources = append(cat.Resources, res)
	}
	s.categories = append(s.categories, cat)
	return cat
}

// SeedComment adds a comment to a center.
func (s *Server) SeedComment(centerID, userID int64, text string, star int) model.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Comment{ID: s.id(), CenterID: centerID, UserID: userID, Text: text, Star: star}
	s.comments = append(s.comments, c)
	return c
}

// SeedLike adds a like record.
func (s *Server) SeedLike(userID, centerID int64) model.LikedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := model.LikedItem{ID: s.id(), UserID: userID, CenterID: centerID}
	s.likes = append(s.likes, l)
	return l
}

// SeedReception adds a booking for a user.
func (s *Server) SeedReception(userID, centerID, majorID int64, visitDate string) model.Reception {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := model.Reception{
		ID: s.id(), UserID: userID, CenterID: centerID, MajorID: majorID,
		VisitDate: visitDate, Status: "PENDING",
	}
	s.receptions = append(s.receptions, rec)
	return rec
}

func (s *Server) regionByID(id int64) *model.Region {
	for i := range s.regions {
		if s.regions[i].ID == id {
			r := s.regions[i]
			return &r
		}
	}
	return nil
}

func (s *Server) userByID(id int64) *userRec {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}
