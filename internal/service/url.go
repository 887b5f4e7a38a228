package service

import (
	"context"
	"errors"
	"net/url"
	"strconv"

	"github.com/pawansuthar6813/url-shortener/internal/api"
	"github.com/pawansuthar6813/url-shortener/internal/model"
)

// URLService defines short-link operations against /url.
type URLService interface {
	// Create mints a new short link.
	Create(ctx context.Context, req model.CreateURLRequest) (model.URL, error)
	// MyURLs returns all of the caller's links at once.
	MyURLs(ctx context.Context) ([]model.URL, error)
	// MyURLsPaginated returns one page of the caller's links.
	MyURLsPaginated(ctx context.Context, page, size int) (model.Page[model.URL], error)
	// Get returns a single link by id.
	Get(ctx context.Context, id string) (model.URL, error)
	// Delete removes a link.
	Delete(ctx context.Context, id string) error
	// ToggleStatus flips a link between active and inactive.
	ToggleStatus(ctx context.Context, id string) (model.URL, error)
	// Analytics returns all recorded clicks for a link.
	Analytics(ctx context.Context, id string) ([]model.Click, error)
	// AnalyticsPaginated returns one page of recorded clicks.
	AnalyticsPaginated(ctx context.Context, id string, page, size int) (model.Page[model.Click], error)
}

type URLServiceImpl struct {
	api *api.Client
}

// NewURLService constructs URLService over the API client.
func NewURLService(client *api.Client) *URLServiceImpl {
	return &URLServiceImpl{api: client}
}

func (s *URLServiceImpl) Create(ctx context.Context, req model.CreateURLRequest) (model.URL, error) {
	if req.OriginalURL == "" {
		return model.URL{}, errors.New("validation: empty original url")
	}
	var out model.URL
	err := s.api.Post(ctx, "/url/create", req, &out)
	return out, err
}

func (s *URLServiceImpl) MyURLs(ctx context.Context) ([]model.URL, error) {
	var out []model.URL
	err := s.api.Get(ctx, "/url/my-urls", nil, &out)
	return out, err
}

func (s *URLServiceImpl) MyURLsPaginated(ctx context.Context, page, size int) (model.Page[model.URL], error) {
	var out model.Page[model.URL]
	err := s.api.Get(ctx, "/url/my-urls/paginated", pageQuery(page, size), &out)
	return out, err
}

func (s *URLServiceImpl) Get(ctx context.Context, id string) (model.URL, error) {
	var out model.URL
	err := s.api.Get(ctx, "/url/"+id, nil, &out)
	return out, err
}

func (s *URLServiceImpl) Delete(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/url/"+id, nil)
}

func (s *URLServiceImpl) ToggleStatus(ctx context.Context, id string) (model.URL, error) {
	var out model.URL
	err := s.api.Put(ctx, "/url/"+id+"/toggle-status", nil, &out)
	return out, err
}

func (s *URLServiceImpl) Analytics(ctx context.Context, id string) ([]model.Click, error) {
	var out []model.Click
	err := s.api.Get(ctx, "/url/"+id+"/analytics", nil, &out)
	return out, err
}

func (s *URLServiceImpl) AnalyticsPaginated(ctx context.Context, id string, page, size int) (model.Page[model.Click], error) {
	var out model.Page[model.Click]
	err := s.api.Get(ctx, "/url/"+id+"/analytics/paginated", pageQuery(page, size), &out)
	return out, err
}

// pageQuery builds the ?page=&size= pair shared by all paginated endpoints.
func pageQuery(page, size int) url.Values {
	return url.Values{
		"page": []string{strconv.Itoa(page)},
		"size": []string{strconv.Itoa(size)},
	}
}
