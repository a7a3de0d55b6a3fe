package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"findcourse/internal/cli/api"
	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/store"
	"findcourse/internal/model"
)

// ErrNoChanges is reported when a diffed edit has nothing to submit.
var ErrNoChanges = errors.New("nothing changed")

// Mutator coordinates mutating calls under one discipline: the request
// is sent first and the in-memory cache is patched only after the
// server confirms. On failure the cache is untouched and nothing is
// retried.
type Mutator struct {
	client *api.Client
}

func NewMutator(client *api.Client) *Mutator {
	return &Mutator{client: client}
}

// ToggleLike flips the liked state of a center. The index decides the
// direction; the returned bool is the state after the request settled.
func (m *Mutator) ToggleLike(ctx context.Context, idx *store.LikeIndex, centerID int64) (bool, error) {
	if recID, ok := idx.RecordID(centerID); ok {
		if err := m.client.Delete(ctx, fmt.Sprintf("/liked/%d", recID)); err != nil {
			return true, err
		}
		idx.Remove(centerID)
		return false, nil
	}
	var resp struct {
		Data model.LikedItem `json:"data"`
	}
	if err := m.client.PostJSON(ctx, "/liked", map[string]int64{"centerId": centerID}, &resp); err != nil {
		return false, err
	}
	idx.Add(resp.Data)
	return true, nil
}

// AddComment validates, submits, and appends the server-returned record.
func (m *Mutator) AddComment(ctx context.Context, cs *store.Comments, centerID int64, text string, star int) (*model.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("comment text is required")
	}
	if star < 1 || star > 5 {
		return nil, errors.New("star must be between 1 and 5")
	}
	var resp struct {
		Data model.Comment `json:"data"`
	}
	payload := map[string]any{"text": text, "centerId": centerID, "star": star}
	if err := m.client.PostJSON(ctx, "/comments", payload, &resp); err != nil {
		return nil, err
	}
	cs.Append(resp.Data)
	return &resp.Data, nil
}

// EditComment submits the new text and patches the cached comment.
func (m *Mutator) EditComment(ctx context.Context, cs *store.Comments, id int64, text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("comment text is required")
	}
	if err := m.client.PatchJSON(ctx, fmt.Sprintf("/comments/%d", id), map[string]string{"text": text}, nil); err != nil {
		return err
	}
	cs.Patch(id, text)
	return nil
}

// DeleteComment removes the comment server-side, then from the cache.
func (m *Mutator) DeleteComment(ctx context.Context, cs *store.Comments, id int64) error {
	if err := m.client.Delete(ctx, fmt.Sprintf("/comments/%d", id)); err != nil {
		return err
	}
	cs.Remove(id)
	return nil
}

// CenterInput is the create-center form.
type CenterInput struct {
	Name     string  `json:"name"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Image    string  `json:"image,omitempty"`
	RegionID int64   `json:"regionId"`
	MajorsID []int64 `json:"majorsId"`
}

func (in CenterInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return errors.New("name is required")
	case strings.TrimSpace(in.Address) == "":
		return errors.New("address is required")
	case in.RegionID == 0:
		return errors.New("region is required")
	}
	return nil
}

// CreateCenter validates, submits, and appends the returned center.
func (m *Mutator) CreateCenter(ctx context.Context, cat *store.Catalog, in CenterInput) (*model.Center, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var resp struct {
		Data model.Center `json:"data"`
	}
	if err := m.client.PostJSON(ctx, "/centers", in, &resp); err != nil {
		return nil, err
	}
	cat.AppendCenter(resp.Data)
	cat.MyCenters = append(cat.MyCenters, resp.Data)
	return &resp.Data, nil
}

// CenterEdit is the editable subset of a center.
type CenterEdit struct {
	Name    string
	Address string
	Phone   string
	Image   string
}

// EditCenter diffs the edit against the fetched snapshot and submits
// only the changed fields; a no-op edit is refused before any request.
// On success the submitted values are merged into the snapshot.
func (m *Mutator) EditCenter(ctx context.Context, snapshot *model.Center, edit CenterEdit) error {
	payload := map[string]string{}
	if edit.Name != "" && edit.Name != snapshot.Name {
		payload["name"] = edit.Name
	}
	if edit.Address != "" && edit.Address != snapshot.Address {
		payload["address"] = edit.Address
	}
	if edit.Phone != "" && edit.Phone != snapshot.Phone {
		payload["phone"] = edit.Phone
	}
	if edit.Image != "" && edit.Image != snapshot.Image {
		payload["image"] = edit.Image
	}
	if len(payload) == 0 {
		return ErrNoChanges
	}
	if err := m.client.PatchJSON(ctx, fmt.Sprintf("/centers/%d", snapshot.ID), payload, nil); err != nil {
		return err
	}
	if v, ok := payload["name"]; ok {
		snapshot.Name = v
	}
	if v, ok := payload["address"]; ok {
		snapshot.Address = v
	}
	if v, ok := payload["phone"]; ok {
		snapshot.Phone = v
	}
	if v, ok := payload["image"]; ok {
		snapshot.Image = v
	}
	return nil
}

// DeleteCenter removes the center server-side, then from the cache.
func (m *Mutator) DeleteCenter(ctx context.Context, cat *store.Catalog, id int64) error {
	if err := m.client.Delete(ctx, fmt.Sprintf("/centers/%d", id)); err != nil {
		return err
	}
	cat.RemoveCenter(id)
	return nil
}

// ResourceInput is the add-resource form.
type ResourceInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Media       string `json:"media"`
	Image       string `json:"image,omitempty"`
	CategoryID  int64  `json:"categoryId"`
}

func (in ResourceInput) validate() error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return errors.New("name is required")
	case strings.TrimSpace(in.Media) == "":
		return errors.New("media link is required")
	case in.CategoryID == 0:
		return errors.New("category is required")
	}
	return nil
}

// AddResource validates and submits a new study resource.
func (m *Mutator) AddResource(ctx context.Context, in ResourceInput) (*model.Resource, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var resp struct {
		Data model.Resource `json:"data"`
	}
	if err := m.client.PostJSON(ctx, "/resources", in, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// DeleteResource removes a resource by id.
func (m *Mutator) DeleteResource(ctx context.Context, id int64) error {
	return m.client.Delete(ctx, fmt.Sprintf("/resources/%d", id))
}

// BookingInput is the appointment form. Date and Time stay separate
// inputs; the visit date is composed from them on submit.
type BookingInput struct {
	CenterID int64
	FilialID int64
	MajorID  int64
	Date     string // 2006-01-02
	Time     string // 15:04

	// guest fields, required when no session exists
	Name  string
	Phone string
}

// ComposeVisitDate joins separate date and time inputs into the wire
// format the reseption endpoint expects.
func ComposeVisitDate(date, clock string) (string, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return "", fmt.Errorf("invalid visit date/time: %w", err)
	}
	return t.Format(time.RFC3339), nil
}

// Book creates a reception. Authenticated bookings ride the bearer
// token and may omit the filial; guest bookings must carry name, phone,
// and filial so the server can route them.
func (m *Mutator) Book(ctx context.Context, sess *auth.Session, cat *store.Catalog, in BookingInput) (*model.Reception, error) {
	if in.CenterID == 0 {
		return nil, errors.New("center is required")
	}
	if in.MajorID == 0 {
		return nil, errors.New("major is required")
	}
	visit, err := ComposeVisitDate(in.Date, in.Time)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"centerId":  in.CenterID,
		"majorId":   in.MajorID,
		"visitDate": visit,
	}
	if in.FilialID != 0 {
		payload["filialId"] = in.FilialID
	}
	if !sess.Authenticated() {
		switch {
		case strings.TrimSpace(in.Name) == "":
			return nil, errors.New("guest bookings require a name")
		case strings.TrimSpace(in.Phone) == "":
			return nil, errors.New("guest bookings require a phone")
		case in.FilialID == 0:
			return nil, errors.New("guest bookings require a filial")
		}
		payload["name"] = in.Name
		payload["phone"] = in.Phone
	}
	var resp struct {
		Data model.Reception `json:"data"`
	}
	if err := m.client.PostJSON(ctx, "/reseption", payload, &resp); err != nil {
		return nil, err
	}
	cat.AppendReception(resp.Data)
	return &resp.Data, nil
}

// CancelBooking removes a reception server-side, then from the cache.
func (m *Mutator) CancelBooking(ctx context.Context, cat *store.Catalog, id int64) error {
	if err := m.client.Delete(ctx, fmt.Sprintf("/reseption/%d", id)); err != nil {
		return err
	}
	cat.RemoveReception(id)
	return nil
}

// ProfileEdit is the editable subset of the session profile.
type ProfileEdit struct {
	FirstName string
	LastName  string
	Phone     string
	Image     string
}

// UpdateProfile diffs against the fetched profile and submits only the
// changed fields, merging them back on success.
func (m *Mutator) UpdateProfile(ctx context.Context, snapshot *model.User, edit ProfileEdit) error {
	payload := map[string]string{}
	if edit.FirstName != "" && edit.FirstName != snapshot.FirstName {
		payload["firstName"] = edit.FirstName
	}
	if edit.LastName != "" && edit.LastName != snapshot.LastName {
		payload["lastName"] = edit.LastName
	}
	if edit.Phone != "" && edit.Phone != snapshot.Phone {
		payload["phone"] = edit.Phone
	}
	if edit.Image != "" && edit.Image != snapshot.Image {
		payload["image"] = edit.Image
	}
	if len(payload) == 0 {
		return ErrNoChanges
	}
	if err := m.client.PatchJSON(ctx, fmt.Sprintf("/users/%d", snapshot.ID), payload, nil); err != nil {
		return err
	}
	if v, ok := payload["firstName"]; ok {
		snapshot.FirstName = v
	}
	if v, ok := payload["lastName"]; ok {
		snapshot.LastName = v
	}
	if v, ok := payload["phone"]; ok {
		snapshot.Phone = v
	}
	if v, ok := payload["image"]; ok {
		snapshot.Image = v
	}
	return nil
}

// DeleteAccount deletes the user server-side and clears the session.
func (m *Mutator) DeleteAccount(ctx context.Context, sess *auth.Session, userID int64) error {
	if err := m.client.Delete(ctx, fmt.Sprintf("/users/%d", userID)); err != nil {
		return err
	}
	return sess.Logout()
}
