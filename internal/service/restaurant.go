package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/beginvegan/backend/internal/apperr"
	"github.com/beginvegan/backend/internal/geo"
	"github.com/beginvegan/backend/internal/models"
	"github.com/beginvegan/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ReviewSort string

const (
	ReviewSortDate           ReviewSort = "date"
	ReviewSortRecommendation ReviewSort = "recommendation"
)

type SearchSort string

const (
	SearchSortDistance SearchSort = "distance"
	SearchSortRate     SearchSort = "rate"
)

const maxRandomRestaurants = 50

type RestaurantConfig struct {
	AroundRadiusKm float64
	RandomRadiusKm float64
	PageSize       int
}

// RestaurantService serves restaurant lookups, proximity queries and search.
type RestaurantService struct {
	db     *gorm.DB
	geo    *geo.Calculator
	config RestaurantConfig
}

var _ IRestaurantService = (*RestaurantService)(nil)

func NewRestaurantService(db *gorm.DB, calc *geo.Calculator, cfg RestaurantConfig) *RestaurantService {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	return &RestaurantService{db: db, geo: calc, config: cfg}
}

// located pairs a restaurant with its distance from the caller in km.
type located struct {
	restaurant models.Restaurant
	distance   float64
}

// GetDetail returns a restaurant with its menus. The distance is included
// when from is not nil.
func (s *RestaurantService) GetDetail(ctx context.Context, userID, restaurantID uuid.UUID, from *geo.Point) (*types.RestaurantDetail, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).Preload("Menus").First(&restaurant, "id = ?", restaurantID).Error
	if err != nil {
		return nil, notFoundOr(err, "restaurant not found", "load restaurant")
	}

	detail := &types.RestaurantDetail{Restaurant: restaurant}
	if from != nil {
		d, err := s.distanceTo(restaurant, *from)
		if err != nil {
			return nil, apperr.Internal("restaurant has invalid coordinates", err)
		}
		detail.Distance = &d
	}

	if err := s.db.WithContext(ctx).Model(&models.Review{}).
		Where("restaurant_id = ? AND visible = ?", restaurantID, true).
		Count(&detail.ReviewCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	marked, err := bookmarkedSet(ctx, s.db, userID, models.ContentTypeRestaurant, []uuid.UUID{restaurantID})
	if err != nil {
		return nil, err
	}
	detail.IsBookmarked = marked[restaurantID]
	return detail, nil
}

// ListReviews pages the visible reviews of a restaurant.
func (s *RestaurantService) ListReviews(ctx context.Context, restaurantID uuid.UUID, page int, sortBy ReviewSort) (types.Page[types.ReviewItem], error) {
	page, size := normalizePage(page, s.config.PageSize)
	if err := s.exists(ctx, restaurantID); err != nil {
		return types.Page[types.ReviewItem]{}, err
	}

	q := s.db.WithContext(ctx).
		Preload("Images").Preload("User").
		Where("restaurant_id = ? AND visible = ?", restaurantID, true)
	switch sortBy {
	case ReviewSortDate, "":
		q = q.Order("created_at DESC")
	case ReviewSortRecommendation:
		q = q.Order("(SELECT COUNT(*) FROM recommendations WHERE recommendations.review_id = reviews.id) DESC").
			Order("created_at DESC")
	default:
		return types.Page[types.ReviewItem]{}, apperr.InvalidInput("sort must be date or recommendation")
	}

	var reviews []models.Review
	if err := q.Offset(page * size).Limit(size + 1).Find(&reviews).Error; err != nil {
		return types.Page[types.ReviewItem]{}, fmt.Errorf("failed to list reviews: %w", err)
	}
	items, err := toReviewItems(ctx, s.db, reviews)
	if err != nil {
		return types.Page[types.ReviewItem]{}, err
	}
	return buildPage(items, page, size), nil
}

// Around returns every restaurant inside the around radius, nearest first.
func (s *RestaurantService) Around(ctx context.Context, from geo.Point) ([]types.RestaurantDetail, error) {
	all, err := s.locateAll(ctx, s.db.WithContext(ctx).Preload("Menus"), from)
	if err != nil {
		return nil, err
	}
	result := []types.RestaurantDetail{}
	for _, l := range all {
		if l.distance > s.config.AroundRadiusKm {
			break
		}
		d := l.distance
		result = append(result, types.RestaurantDetail{Restaurant: l.restaurant, Distance: &d})
	}
	return result, nil
}

// Random returns up to count restaurants in random order.
func (s *RestaurantService) Random(ctx context.Context, userID uuid.UUID, count int) ([]types.RestaurantSummary, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	var restaurants []models.Restaurant
	if err := s.db.WithContext(ctx).Order("RANDOM()").Limit(count).Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("failed to load random restaurants: %w", err)
	}
	rows := make([]located, len(restaurants))
	for i, r := range restaurants {
		rows[i].restaurant = r
	}
	return s.summaries(ctx, userID, rows, false)
}

// RandomNear returns up to count random restaurants inside the random radius.
func (s *RestaurantService) RandomNear(ctx context.Context, userID uuid.UUID, count int, from geo.Point) ([]types.RestaurantSummary, error) {
	if err := validateCount(count); err != nil {
		return nil, err
	}
	all, err := s.locateAll(ctx, s.db.WithContext(ctx), from)
	if err != nil {
		return nil, err
	}
	var near []located
	for _, l := range all {
		if l.distance > s.config.RandomRadiusKm {
			break
		}
		near = append(near, l)
	}
	rand.Shuffle(len(near), func(i, j int) { near[i], near[j] = near[j], near[i] })
	if len(near) > count {
		near = near[:count]
	}
	return s.summaries(ctx, userID, near, true)
}

// Nearest pages all restaurants ordered by distance.
func (s *RestaurantService) Nearest(ctx context.Context, userID uuid.UUID, from geo.Point, page int) (types.Page[types.RestaurantSummary], error) {
	page, size := normalizePage(page, s.config.PageSize)
	all, err := s.locateAll(ctx, s.db.WithContext(ctx), from)
	if err != nil {
		return types.Page[types.RestaurantSummary]{}, err
	}
	return s.pageSummaries(ctx, userID, slicePage(all, page, size), true)
}

// Search matches keyword against restaurant and menu names. Sorting by
// distance needs from; sorting by rate includes distances when from is set.
func (s *RestaurantService) Search(ctx context.Context, userID uuid.UUID, keyword string, from *geo.Point, sortBy SearchSort, page int) (types.Page[types.RestaurantSummary], error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return types.Page[types.RestaurantSummary]{}, apperr.InvalidInput("keyword is required")
	}
	page, size := normalizePage(page, s.config.PageSize)

	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"
	q := s.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("LOWER(name) LIKE ? ESCAPE '\\' OR id IN (?)", pattern,
			s.db.Model(&models.Menu{}).Select("restaurant_id").Where("LOWER(name) LIKE ? ESCAPE '\\'", pattern))

	switch sortBy {
	case SearchSortDistance, "":
		if from == nil {
			return types.Page[types.RestaurantSummary]{}, apperr.InvalidInput("location is required to sort by distance")
		}
		all, err := s.locateAll(ctx, q, *from)
		if err != nil {
			return types.Page[types.RestaurantSummary]{}, err
		}
		return s.pageSummaries(ctx, userID, slicePage(all, page, size), true)
	case SearchSortRate:
		var restaurants []models.Restaurant
		if err := q.Order("rate DESC").Order("name").Offset(page * size).Limit(size + 1).Find(&restaurants).Error; err != nil {
			return types.Page[types.RestaurantSummary]{}, fmt.Errorf("failed to search restaurants: %w", err)
		}
		p := buildPage(restaurants, page, size)
		rows := make([]located, 0, len(p.Items))
		for _, r := range p.Items {
			l := located{restaurant: r}
			if from != nil {
				d, err := s.distanceTo(r, *from)
				if err != nil {
					log.Ctx(ctx).Warn().Err(err).Str("restaurant_id", r.ID.String()).Msg("skipping distance for invalid coordinates")
				}
				l.distance = d
			}
			rows = append(rows, l)
		}
		return s.pageSummaries(ctx, userID, types.Page[located]{Items: rows, Page: p.Page, HasNext: p.HasNext}, from != nil)
	default:
		return types.Page[types.RestaurantSummary]{}, apperr.InvalidInput("sort must be distance or rate")
	}
}

// locateAll loads the restaurants selected by q and sorts them by distance.
// Rows with unparsable coordinates are skipped.
func (s *RestaurantService) locateAll(ctx context.Context, q *gorm.DB, from geo.Point) ([]located, error) {
	var restaurants []models.Restaurant
	if err := q.Find(&restaurants).Error; err != nil {
		return nil, fmt.Errorf("failed to load restaurants: %w", err)
	}
	result := make([]located, 0, len(restaurants))
	for _, r := range restaurants {
		d, err := s.distanceTo(r, from)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("restaurant_id", r.ID.String()).Msg("skipping restaurant with invalid coordinates")
			continue
		}
		result = append(result, located{restaurant: r, distance: d})
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].distance < result[j].distance })
	return result, nil
}

func (s *RestaurantService) distanceTo(r models.Restaurant, from geo.Point) (float64, error) {
	p, err := geo.ParsePoint(r.Latitude, r.Longitude)
	if err != nil {
		return 0, err
	}
	return s.geo.Distance(from, p), nil
}

func (s *RestaurantService) pageSummaries(ctx context.Context, userID uuid.UUID, p types.Page[located], withDistance bool) (types.Page[types.RestaurantSummary], error) {
	items, err := s.summaries(ctx, userID, p.Items, withDistance)
	if err != nil {
		return types.Page[types.RestaurantSummary]{}, err
	}
	return types.Page[types.RestaurantSummary]{Items: items, Page: p.Page, HasNext: p.HasNext}, nil
}

func (s *RestaurantService) summaries(ctx context.Context, userID uuid.UUID, rows []located, withDistance bool) ([]types.RestaurantSummary, error) {
	ids := make([]uuid.UUID, len(rows))
	for i, l := range rows {
		ids[i] = l.restaurant.ID
	}
	marked, err := bookmarkedSet(ctx, s.db, userID, models.ContentTypeRestaurant, ids)
	if err != nil {
		return nil, err
	}

	result := make([]types.RestaurantSummary, len(rows))
	for i, l := range rows {
		r := l.restaurant
		result[i] = types.RestaurantSummary{
			ID:             r.ID,
			Name:           r.Name,
			RestaurantType: r.RestaurantType,
			Address:        r.Address,
			Latitude:       r.Latitude,
			Longitude:      r.Longitude,
			Thumbnail:      r.Thumbnail,
			Rate:           r.Rate,
			IsBookmarked:   marked[r.ID],
		}
		if withDistance {
			d := l.distance
			result[i].Distance = &d
		}
	}
	return result, nil
}

func (s *RestaurantService) exists(ctx context.Context, restaurantID uuid.UUID) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", restaurantID).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to load restaurant: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("restaurant not found")
	}
	return nil
}

func validateCount(count int) error {
	if count < 1 || count > maxRandomRestaurants {
		return apperr.InvalidInput(fmt.Sprintf("count must be between 1 and %d", maxRandomRestaurants))
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// bookmarkedSet reports which of ids the user has bookmarked. An anonymous
// caller has none.
func bookmarkedSet(ctx context.Context, db *gorm.DB, userID uuid.UUID, contentType models.ContentType, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	marked := make(map[uuid.UUID]bool, len(ids))
	if userID == uuid.Nil || len(ids) == 0 {
		return marked, nil
	}
	var found []uuid.UUID
	err := db.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ? AND content_type = ? AND content_id IN ?", userID, contentType, ids).
		Pluck("content_id", &found).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load bookmarks: %w", err)
	}
	for _, id := range found {
		marked[id] = true
	}
	return marked, nil
}
