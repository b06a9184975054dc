package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"dresscode/internal/domain/outfit"
)

// Item is one catalog entry as the server stores it.
type Item struct {
	ID         string
	Title      string
	ImageURL   string
	Images     []string
	Gender     outfit.Gender
	Style      string
	Season     string
	Scene      string
	Weather    string
	Tags       []string
	UserUpload bool
	Owner      string
	CreatedAt  time.Time
}

// Query is a catalog listing request. Empty fields mean "no constraint".
type Query struct {
	Gender  outfit.Gender
	Style   string
	Season  string
	Scene   string
	Weather string
	Tags    []string
	Text    string
	Page    int
	Size    int
}

// PageResult is one page of a listing plus its position.
type PageResult struct {
	Items []Item
	Page  int
	Size  int
	Total int
}

// Service keeps the whole catalog in memory. It exists for development and
// integration testing; a production deployment would sit on a real database.
type Service struct {
	mu        sync.RWMutex
	items     []Item
	favorites map[string]map[string]struct{} // user -> outfit ids
	log       *slog.Logger
	now       func() time.Time
}

func NewService(log *slog.Logger) *Service {
	return &Service{
		items:     seedItems(),
		favorites: make(map[string]map[string]struct{}),
		log:       log.With(slog.String("component", "catalog")),
		now:       time.Now,
	}
}

// List returns the page of items matching q, in stable catalog order.
func (s *Service) List(_ context.Context, q Query) PageResult {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Item
	for _, item := range s.items {
		if s.matches(item, q) {
			matched = append(matched, item)
		}
	}

	start := (q.Page - 1) * q.Size
	end := start + q.Size
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	return PageResult{
		Items: matched[start:end],
		Page:  q.Page,
		Size:  q.Size,
		Total: len(matched),
	}
}

func (s *Service) matches(item Item, q Query) bool {
	if !outfit.MatchesGender(q.Gender, item.Gender) {
		return false
	}
	if q.Style != "" && !strings.EqualFold(q.Style, item.Style) {
		return false
	}
	if q.Season != "" && !strings.EqualFold(q.Season, item.Season) {
		return false
	}
	if q.Scene != "" && !strings.EqualFold(q.Scene, item.Scene) {
		return false
	}
	if q.Weather != "" && !strings.EqualFold(q.Weather, item.Weather) {
		return false
	}
	for _, want := range q.Tags {
		if !containsFold(item.Tags, want) {
			return false
		}
	}
	if text := strings.TrimSpace(q.Text); text != "" {
		lowered := strings.ToLower(text)
		if !strings.Contains(strings.ToLower(item.Title), lowered) && !containsFold(item.Tags, text) {
			return false
		}
	}
	return true
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, strings.TrimSpace(needle)) {
			return true
		}
	}
	return false
}

// Find returns the item with the given id.
func (s *Service) Find(_ context.Context, id string) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// Favorites lists a user's favorite items, newest id last.
func (s *Service) Favorites(_ context.Context, user string) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.favorites[user]
	out := make([]Item, 0, len(set))
	for _, item := range s.items {
		if _, ok := set[item.ID]; ok {
			out = append(out, item)
		}
	}
	return out
}

// IsFavorite reports whether the user has favorited the item.
func (s *Service) IsFavorite(_ context.Context, user, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.favorites[user][id]
	return ok
}

// SetFavorite marks or unmarks an item as the user's favorite.
func (s *Service) SetFavorite(_ context.Context, user, id string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.exists(id) {
		return fmt.Errorf("outfit %s: %w", id, outfit.ErrNotFound)
	}
	if on {
		if s.favorites[user] == nil {
			s.favorites[user] = make(map[string]struct{})
		}
		s.favorites[user][id] = struct{}{}
	} else {
		delete(s.favorites[user], id)
	}
	return nil
}

func (s *Service) exists(id string) bool {
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// AddUpload stores a user-submitted outfit image and returns the new item.
// The image bytes themselves are not retained; only the catalog entry is.
func (s *Service) AddUpload(_ context.Context, user, filename string, size int) Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	title := strings.TrimSuffix(filename, extOf(filename))
	if title == "" {
		title = "My outfit"
	}
	item := Item{
		ID:         id,
		Title:      title,
		ImageURL:   fmt.Sprintf("/user_uploads/%s/%s", id, filename),
		Gender:     outfit.GenderUnisex,
		Tags:       []string{"upload"},
		UserUpload: true,
		Owner:      user,
		CreatedAt:  s.now(),
	}
	s.items = append(s.items, item)
	s.log.Info("user upload stored", "id", id, "user", user, "bytes", size)
	return item
}

func extOf(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return ""
}

// Delete removes a user's own uploaded item. Catalog items and other users'
// uploads cannot be deleted.
func (s *Service) Delete(_ context.Context, user, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID != id {
			continue
		}
		if !item.UserUpload || item.Owner != user {
			return fmt.Errorf("outfit %s is not removable by %s: %w", id, user, outfit.ErrNotFound)
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		for _, favs := range s.favorites {
			delete(favs, id)
		}
		return nil
	}
	return fmt.Errorf("outfit %s: %w", id, outfit.ErrNotFound)
}

// Tags returns the distinct tag vocabulary of the catalog, sorted.
func (s *Service) Tags(_ context.Context) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, item := range s.items {
		for _, tag := range item.Tags {
			seen[strings.ToLower(tag)] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for tag := range seen {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}
