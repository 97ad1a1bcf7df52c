package repositories

import (
	"circuit-planner-service/internal/domain"
	"circuit-planner-service/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const DefaultHubsCollection = "Hubs"

// MongoRouteRepository reads the scraper's document layout: one collection of
// hub documents ({hub_name}) and one collection per hub code holding
// {destination, distance, categories} route documents.
type MongoRouteRepository struct {
	DB             *mongo.Database
	HubsCollection string
}

func NewMongoRouteRepository(db *mongo.Database) *MongoRouteRepository {
	return &MongoRouteRepository{DB: db, HubsCollection: DefaultHubsCollection}
}

// Return every hub whose name yields a hub code. Duplicate codes keep the
// first document read.
func (m *MongoRouteRepository) ListHubs(ctx context.Context) (_ []domain.Hub, err error) {
	defer obs.Time(ctx, "mongo.ListHubs")(&err)

	if m.DB == nil {
		return nil, errors.New("mongo route repository: db is nil")
	}

	cur, err := m.DB.Collection(m.HubsCollection).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list hubs: find in %q: %w", m.HubsCollection, err)
	}
	defer cur.Close(ctx)

	seen := make(map[string]struct{})
	hubs := make([]domain.Hub, 0, 16)
	skipped := 0
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("list hubs: decode document: %w", err)
		}

		hub, ok := hubFromDoc(doc)
		if !ok {
			skipped++
			continue
		}
		if _, dup := seen[hub.Code]; dup {
			continue
		}
		seen[hub.Code] = struct{}{}
		hubs = append(hubs, hub)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list hubs: cursor: %w", err)
	}

	if skipped > 0 {
		obs.Logger(ctx).Warn("hub documents without a hub code", zap.Int("skipped", skipped))
	}

	slices.SortFunc(hubs, func(a, b domain.Hub) int { return strings.Compare(a.Code, b.Code) })
	return hubs, nil
}

// Return the route documents of one hub. Documents without a destination or
// with unreadable categories are skipped.
func (m *MongoRouteRepository) ListRoutes(ctx context.Context, hubCode string) (_ []domain.RawRoute, err error) {
	defer obs.Time(ctx, "mongo.ListRoutes")(&err)

	if m.DB == nil {
		return nil, errors.New("mongo route repository: db is nil")
	}
	if strings.TrimSpace(hubCode) == "" {
		return nil, errors.New("list routes: hub code must not be empty")
	}

	cur, err := m.DB.Collection(hubCode).Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list routes: find in %q: %w", hubCode, err)
	}
	defer cur.Close(ctx)

	routes := make([]domain.RawRoute, 0, 64)
	skipped := 0
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("list routes: decode document: %w", err)
		}

		r, ok := rawRouteFromDoc(doc)
		if !ok {
			skipped++
			continue
		}
		routes = append(routes, r)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list routes: cursor: %w", err)
	}

	if skipped > 0 {
		obs.Logger(ctx).Warn("unreadable route documents", zap.String("hub", hubCode), zap.Int("skipped", skipped))
	}

	return routes, nil
}

func hubFromDoc(doc bson.M) (domain.Hub, bool) {
	name, _ := doc["hub_name"].(string)
	name = strings.TrimSpace(name)
	code, ok := domain.ExtractHubCode(name)
	if !ok {
		return domain.Hub{}, false
	}
	return domain.Hub{Code: code, Name: name}, true
}

func rawRouteFromDoc(doc bson.M) (domain.RawRoute, bool) {
	dest, _ := doc["destination"].(string)
	if strings.TrimSpace(dest) == "" {
		return domain.RawRoute{}, false
	}

	// Distances are scraped text, but hand-edited documents may hold numbers.
	var distance string
	switch v := doc["distance"].(type) {
	case string:
		distance = v
	case nil:
	default:
		distance = fmt.Sprint(v)
	}

	categories, ok := intFromBSON(doc["categories"])
	if !ok {
		return domain.RawRoute{}, false
	}

	return domain.RawRoute{
		Destination: dest,
		Distance:    distance,
		Categories:  categories,
	}, true
}

// intFromBSON reads an integer stored as any BSON number or numeric string.
// A missing value reads as 0.
func intFromBSON(v any) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case int:
		return n, true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
