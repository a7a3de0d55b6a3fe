package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"findcourse/internal/cli/api"
	"findcourse/internal/cli/auth"
	"findcourse/internal/cli/store"
	"findcourse/internal/model"
)

// CatalogService fetches reference and listing collections into the
// per-invocation cache.
type CatalogService struct {
	client *api.Client
}

func NewCatalogService(client *api.Client) *CatalogService {
	return &CatalogService{client: client}
}

// LoadCenterBrowse fetches centers, regions, and majors concurrently
// and returns only once all three have settled, so derived views never
// compute against a partially loaded cache.
func (s *CatalogService) LoadCenterBrowse(ctx context.Context) (*store.Catalog, error) {
	cat := &store.Catalog{}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var resp struct {
			Data []model.Center `json:"data"`
		}
		if err := s.client.GetJSON(ctx, "/centers", &resp); err != nil {
			return fmt.Errorf("loading centers: %w", err)
		}
		cat.Centers = resp.Data
		return nil
	})
	g.Go(func() error {
		var resp struct {
			Data []model.Region `json:"data"`
		}
		if err := s.client.GetJSON(ctx, "/regions/search", &resp); err != nil {
			return fmt.Errorf("loading regions: %w", err)
		}
		cat.Regions = resp.Data
		return nil
	})
	g.Go(func() error {
		var resp struct {
			Data []model.Major `json:"data"`
		}
		if err := s.client.GetJSON(ctx, "/major", &resp); err != nil {
			return fmt.Errorf("loading majors: %w", err)
		}
		cat.Majors = resp.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadCenter fetches one center with its joined majors, owner, and
// comments.
func (s *CatalogService) LoadCenter(ctx context.Context, id int64) (*model.Center, error) {
	var resp struct {
		Data model.Center `json:"data"`
	}
	if err := s.client.GetJSON(ctx, fmt.Sprintf("/centers/%d", id), &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// LoadCategories fetches all categories with their embedded resources.
func (s *CatalogService) LoadCategories(ctx context.Context) ([]model.Category, error) {
	var resp struct {
		Data []model.Category `json:"data"`
	}
	if err := s.client.GetJSON(ctx, "/categories", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// LoadBranches fetches the filials reference collection.
func (s *CatalogService) LoadBranches(ctx context.Context) ([]model.Branch, error) {
	var resp struct {
		Data []model.Branch `json:"data"`
	}
	if err := s.client.GetJSON(ctx, "/filials", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// LoadMyCenters fetches the centers owned by the session user.
func (s *CatalogService) LoadMyCenters(ctx context.Context) ([]model.Center, error) {
	var resp struct {
		Data []model.Center `json:"data"`
	}
	if err := s.client.GetJSON(ctx, "/users/mycenters", &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// FavoriteView is one liked record joined with its center, when the
// center still resolves.
type FavoriteView struct {
	Like   model.LikedItem
	Center *model.Center
}

// LoadFavorites fetches the profile's likes and the full centers
// collection concurrently, then joins them by centerId. A like whose
// center no longer resolves keeps a nil Center rather than being
// dropped.
func (s *CatalogService) LoadFavorites(ctx context.Context, sess *auth.Session) ([]FavoriteView, *store.Catalog, error) {
	cat := &store.Catalog{}
	var profile *model.Profile

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := sess.Mydata(gctx)
		if err != nil {
			return err
		}
		profile = p
		return nil
	})
	g.Go(func() error {
		var resp struct {
			Data []model.Center `json:"data"`
		}
		if err := s.client.GetJSON(gctx, "/centers", &resp); err != nil {
			return fmt.Errorf("loading centers: %w", err)
		}
		cat.Centers = resp.Data
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	cat.SetLikes(profile.Likes)
	views := make([]FavoriteView, 0, len(profile.Likes))
	for _, like := range profile.Likes {
		views = append(views, FavoriteView{Like: like, Center: cat.CenterByID(like.CenterID)})
	}
	return views, cat, nil
}
