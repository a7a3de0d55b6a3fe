package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"findcourse/internal/model"
)

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		Password  string `json:"password"`
		Role      string `json:"role"`
		Image     string `json:"image"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if in.Email == "" || in.Password == "" || in.FirstName == "" {
		writeErr(w, http.StatusBadRequest, "missing required field")
		return
	}
	if in.Role == "" {
		in.Role = model.RoleUser
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[in.Email]; exists {
		writeErr(w, http.StatusConflict, "email already registered")
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	u := &userRec{
		User: model.User{
			ID: s.id(), FirstName: in.FirstName, LastName: in.LastName,
			Email: in.Email, Phone: in.Phone, Role: in.Role, Image: in.Image,
		},
		passwordHash: hash,
	}
	s.users[in.Email] = u
	writeData(w, http.StatusCreated, u.User)
}

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if err := decode(r, &in); err != nil || in.Email == "" {
		writeErr(w, http.StatusBadRequest, "email is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[in.Email]
	if !ok {
		writeErr(w, http.StatusNotFound, "user not found")
		return
	}
	u.otpSent = true
	writeData(w, http.StatusOK, "otp sent")
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[in.Email]
	if !ok || !u.otpSent {
		writeErr(w, http.StatusNotFound, "no pending verification")
		return
	}
	if in.OTP != FixedOTP {
		writeErr(w, http.StatusBadRequest, "wrong otp")
		return
	}
	u.verified = true
	writeData(w, http.StatusOK, "verified")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[in.Email]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(in.Password)) != nil {
		writeErr(w, http.StatusUnauthorized, "wrong email or password")
		return
	}
	if !u.verified {
		writeErr(w, http.StatusForbidden, "email not verified")
		return
	}
	refresh := uuid.NewString()
	s.refresh[refresh] = u.ID
	// token pair is returned unwrapped, unlike the {data} envelopes
	writeJSON(w, http.StatusOK, model.TokenPair{
		AccessToken:  s.mintAccessToken(u),
		RefreshToken: refresh,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := decode(r, &in); err != nil || in.RefreshToken == "" {
		writeErr(w, http.StatusBadRequest, "refreshToken is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, ok := s.refresh[in.RefreshToken]
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unknown refresh token")
		return
	}
	u := s.userByID(uid)
	if u == nil {
		writeErr(w, http.StatusUnauthorized, "user gone")
		return
	}
	// rotate: the old refresh token dies with the exchange
	delete(s.refresh, in.RefreshToken)
	rotated := uuid.NewString()
	s.refresh[rotated] = uid
	writeJSON(w, http.StatusOK, model.TokenPair{
		AccessToken:  s.mintAccessToken(u),
		RefreshToken: rotated,
	})
}

func (s *Server) handleMydata(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByID(sessionUser(r))
	if u == nil {
		writeErr(w, http.StatusUnauthorized, "user gone")
		return
	}
	profile := model.Profile{User: u.User}
	for _, l := range s.likes {
		if l.UserID == u.ID {
			profile.Likes = append(profile.Likes, l)
		}
	}
	for _, rec := range s.receptions {
		if rec.UserID == u.ID {
			profile.Receptions = append(profile.Receptions, s.joinReception(rec))
		}
	}
	writeData(w, http.StatusOK, profile)
}

func (s *Server) handleMyCenters(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := sessionUser(r)
	mine := []model.Center{}
	for _, c := range s.centers {
		if c.UserID == uid {
			mine = append(mine, c)
		}
	}
	writeData(w, http.StatusOK, mine)
}

func (s *Server) handleUserPatch(w http.ResponseWriter, r *http.Request) {
	if pathID(r) != sessionUser(r) {
		writeErr(w, http.StatusForbidden, "not your account")
		return
	}
	var in map[string]string
	if err := decode(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByID(sessionUser(r))
	if v, ok := in["firstName"]; ok {
		u.FirstName = v
	}
	if v, ok := in["lastName"]; ok {
		u.LastName = v
	}
	if v, ok := in["phone"]; ok {
		u.Phone = v
	}
	if v, ok := in["image"]; ok {
		u.Image = v
	}
	writeData(w, http.StatusOK, u.User)
}

func (s *Server) handleUserDelete(w http.ResponseWriter, r *http.Request) {
	if pathID(r) != sessionUser(r) {
		writeErr(w, http.StatusForbidden, "not your account")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByID(sessionUser(r))
	if u != nil {
		delete(s.users, u.Email)
	}
	writeData(w, http.StatusOK, "deleted")
}

func (s *Server) handleCenters(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, s.centers)
}

func (s *Server) handleCenterDetail(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	for _, c := range s.centers {
		if c.ID == id {
			c.Comments = nil
			for _, cm := range s.comments {
				if cm.CenterID == id {
					if author := s.userByID(cm.UserID); author != nil {
						u := author.User
						cm.User = &u
					}
					c.Comments = append(c.Comments, cm)
				}
			}
			if owner := s.userByID(c.UserID); owner != nil {
				c.User = &model.Owner{ID: owner.ID, FirstName: owner.FirstName, LastName: owner.LastName}
			}
			writeData(w, http.StatusOK, c)
			return
		}
	}
	writeErr(w, http.StatusNotFound, "center not found")
}

func (s *Server) handleCenterCreate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.userByID(sessionUser(r))
	if u == nil || u.Role != model.RoleCEO {
		writeErr(w, http.StatusForbidden, "only a CEO can create centers")
		return
	}
	var in struct {
		Name     string  `json:"name"`
		Address  string  `json:"address"`
		Phone    string  `json:"phone"`
		Image    string  `json:"image"`
		RegionID int64   `json:"regionId"`
		MajorsID []int64 `json:"majorsId"`
	}
	if err := decode(r, &in); err != nil || in.Name == "" || in.Address == "" {
		writeErr(w, http.StatusBadRequest, "name and address are required")
		return
	}
	c := model.Center{
		ID: s.id(), Name: in.Name, Address: in.Address, Phone: in.Phone,
		Image: in.Image, RegionID: in.RegionID, Region: s.regionByID(in.RegionID),
		UserID: u.ID,
	}
	for _, mid := range in.MajorsID {
		for _, m := range s.majors {
			if m.ID == mid {
				c.Majors = append(c.Majors, m)
			}
		}
	}
	s.centers = append(s.centers, c)
	writeData(w, http.StatusCreated, c)
}

func (s *Server) handleCenterPatch(w http.ResponseWriter, r *http.Request) {
	var in map[string]string
	if err := decode(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	for i := range s.centers {
		if s.centers[i].ID != id {
			continue
		}
		if s.centers[i].UserID != sessionUser(r) {
			writeErr(w, http.StatusForbidden, "not your center")
			return
		}
		if v, ok := in["name"]; ok {
			s.centers[i].Name = v
		}
		if v, ok := in["address"]; ok {
			s.centers[i].Address = v
		}
		if v, ok := in["phone"]; ok {
			s.centers[i].Phone = v
		}
		if v, ok := in["image"]; ok {
			s.centers[i].Image = v
		}
		writeData(w, http.StatusOK, s.centers[i])
		return
	}
	writeErr(w, http.StatusNotFound, "center not found")
}

func (s *Server) handleCenterDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	for i := range s.centers {
		if s.centers[i].ID != id {
			continue
		}
		if s.centers[i].UserID != sessionUser(r) {
			writeErr(w, http.StatusForbidden, "not your center")
			return
		}
		s.centers = append(s.centers[:i], s.centers[i+1:]...)
		writeData(w, http.StatusOK, "deleted")
		return
	}
	writeErr(w, http.StatusNotFound, "center not found")
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, s.categories)
}

func (s *Server) handleMajors(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, s.majors)
}

func (s *Server) handleRegions(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, s.regions)
}

func (s *Server) handleFilials(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeData(w, http.StatusOK, s.filials)
}

func (s *Server) handleResourceCreate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Media       string `json:"media"`
		Image       string `json:"image"`
		CategoryID  int64  `json:"categoryId"`
	}
	if err := decode(r, &in); err != nil || in.Name == "" {
		writeErr(w, http.StatusBadRequest, "name is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID != in.CategoryID {
			continue
		}
		res := model.Resource{
			ID: s.id(), UserID: sessionUser(r), CategoryID: in.CategoryID,
			Name: in.Name, Description: in.Description, Media: in.Media, Image: in.Image,
		}
		s.categories[i].Resources = append(s.categories[i].Resources, res)
		writeData(w, http.StatusCreated, res)
		return
	}
	writeErr(w, http.StatusNotFound, "category not found")
}

func (s *Server) handleResourceDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	for i := range s.categories {
		for j := range s.categories[i].Resources {
			res := s.categories[i].Resources[j]
			if res.ID != id {
				continue
			}
			if res.UserID != sessionUser(r) {
				writeErr(w, http.StatusForbidden, "not your resource")
				return
			}
			s.categories[i].Resources = append(s.categories[i].Resources[:j], s.categories[i].Resources[j+1:]...)
			writeData(w, http.StatusOK, "deleted")
			return
		}
	}
	writeErr(w, http.StatusNotFound, "resource not found")
}

func (s *Server) handleCommentCreate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text     string `json:"text"`
		CenterID int64  `json:"centerId"`
		Star     int    `json:"star"`
	}
	if err := decode(r, &in); err != nil || strings.TrimSpace(in.Text) == "" {
		writeErr(w, http.StatusBadRequest, "text is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c := model.Comment{
		ID: s.id(), Text: in.Text, Star: in.Star,
		CenterID: in.CenterID, UserID: sessionUser(r),
	}
	s.comments = append(s.comments, c)
	writeData(w, http.StatusCreated, c)
}

func (s *Server) handleCommentPatch(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Text string `json:"text"`
	}
	if err := decode(r, &in); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	for i := range s.comments {
		if s.comments[i].ID != id {
			continue
		}
		if s.comments[i].UserID != sessionUser(r) {
			writeErr(w, http.StatusForbidden, "not your comment")
			return
		}
		s.comments[i].Text = in.Text
		writeData(w, http.StatusOK, s.comments[i])
		return
	}
	writeErr(w, http.StatusNotFound, "comment not found")
}

func (s *Server) handleCommentDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	for i := range s.comments {
		if s.comments[i].ID != id {
			continue
		}
		if s.comments[i].UserID != sessionUser(r) {
			writeErr(w, http.StatusForbidden, "not your comment")
			return
		}
		s.comments = append(s.comments[:i], s.comments[i+1:]...)
		writeData(w, http.StatusOK, "deleted")
		return
	}
	writeErr(w, http.StatusNotFound, "comment not found")
}

func (s *Server) handleLikeCreate(w http.ResponseWriter, r *http.Request) {
	var in struct {
		CenterID int64 `json:"centerId"`
	}
	if err := decode(r, &in); err != nil || in.CenterID == 0 {
		writeErr(w, http.StatusBadRequest, "centerId is required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	uid := sessionUser(r)
	for _, l := range s.likes {
		if l.UserID == uid && l.CenterID == in.CenterID {
			writeErr(w, http.StatusConflict, "already liked")
			return
		}
	}
	l := model.LikedItem{ID: s.id(), UserID: uid, CenterID: in.CenterID}
	s.likes = append(s.likes, l)
	writeData(w, http.StatusCreated, l)
}

func (s *Server) handleLikeDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	for i := range s.likes {
		if s.likes[i].ID != id {
			continue
		}
		if s.likes[i].UserID != sessionUser(r) {
			writeErr(w, http.StatusForbidden, "not your like")
			return
		}
		s.likes = append(s.likes[:i], s.likes[i+1:]...)
		writeData(w, http.StatusOK, "deleted")
		return
	}
	writeErr(w, http.StatusNotFound, "like not found")
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	// bearer is optional here; guests book with explicit contact fields
	uid, _ := s.parseToken(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
	var in struct {
		CenterID  int64  `json:"centerId"`
		FilialID  int64  `json:"filialId"`
		MajorID   int64  `json:"majorId"`
		VisitDate string `json:"visitDate"`
		Name      string `json:"name"`
		Phone     string `json:"phone"`
	}
	if err := decode(r, &in); err != nil || in.CenterID == 0 || in.MajorID == 0 || in.VisitDate == "" {
		writeErr(w, http.StatusBadRequest, "centerId, majorId and visitDate are required")
		return
	}
	if uid == 0 && (in.Name == "" || in.Phone == "" || in.FilialID == 0) {
		writeErr(w, http.StatusBadRequest, "guest bookings require name, phone and filialId")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := model.Reception{
		ID: s.id(), UserID: uid, CenterID: in.CenterID, FilialID: in.FilialID,
		MajorID: in.MajorID, VisitDate: in.VisitDate, Status: "PENDING",
		Name: in.Name, Phone: in.Phone,
	}
	rec = s.joinReception(rec)
	s.receptions = append(s.receptions, rec)
	writeData(w, http.StatusCreated, rec)
}

func (s *Server) handleBookingDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := pathID(r)
	for i := range s.receptions {
		if s.receptions[i].ID != id {
			continue
		}
		if s.receptions[i].UserID != sessionUser(r) {
			writeErr(w, http.StatusForbidden, "not your booking")
			return
		}
		s.receptions = append(s.receptions[:i], s.receptions[i+1:]...)
		writeData(w, http.StatusOK, "deleted")
		return
	}
	writeErr(w, http.StatusNotFound, "booking not found")
}

func (s *Server) joinReception(rec model.Reception) model.Reception {
	for i := range s.centers {
		if s.centers[i].ID == rec.CenterID {
			c := s.centers[i]
			rec.Center = &c
		}
	}
	for _, m := range s.majors {
		if m.ID == rec.MajorID {
			mm := m
			rec.Major = &mm
		}
	}
	for _, f := range s.filials {
		if f.ID == rec.FilialID {
			ff := f
			rec.Filial = &ff
		}
	}
	return rec
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeErr(w, http.StatusBadRequest, "image field is required")
		return
	}
	defer file.Close()
	raw, err := io.ReadAll(file)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "unreadable file")
		return
	}
	stored := uuid.NewString() + filepath.Ext(header.Filename)
	s.mu.Lock()
	s.images[stored] = raw
	s.mu.Unlock()
	writeData(w, http.StatusOK, stored)
}

func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	s.mu.Lock()
	raw, ok := s.images[name]
	s.mu.Unlock()
	if !ok {
		writeErr(w, http.StatusNotFound, "image not found")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}
