package store

import (
	"context"
	"strings"
	"time"

	"leadapi/internal/domain"

	"gorm.io/gorm/clause"
)

type RouteStore struct{ s *Store }

func (s *Store) Routes() *RouteStore { return &RouteStore{s: s} }

// Resolve returns the recipient list for a city. Lookup is case-insensitive.
// An unregistered city resolves to a single-element list containing the
// stored default_email setting, or the configured fallback if unset.
func (rs *RouteStore) Resolve(ctx context.Context, city string) ([]string, error) {
	var route domain.Route
	err := rs.s.DB.WithContext(ctx).First(&route, "city_key = ?", cityKey(city)).Error
	if err == nil {
		return splitEmails(route.Emails), nil
	}
	if translate(err) != ErrRecordNotFound {
		return nil, err
	}

	def, err := rs.s.Settings().Get(ctx, domain.SettingDefaultEmail)
	if err != nil {
		if err != ErrRecordNotFound {
			return nil, err
		}
		def = rs.s.DefaultEmail
	}
	return []string{def}, nil
}

// Upsert applies the same de-duplicated email set to every listed city.
// Each city is an independent insert-or-update on its key; concurrent
// upserts to the same city are last-write-wins.
func (rs *RouteStore) Upsert(ctx context.Context, cities, emails []string) error {
	cities = normalize(cities)
	joined := strings.Join(normalize(emails), ",")
	if len(cities) == 0 || joined == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	for _, city := range cities {
		route := domain.Route{
			CityKey:   cityKey(city),
			City:      city,
			Emails:    joined,
			UpdatedAt: now,
		}
		err := rs.s.DB.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "city_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"city", "emails", "updated_at"}),
		}).Create(&route).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the rule for a city. Unknown cities are not an error.
func (rs *RouteStore) Delete(ctx context.Context, city string) error {
	return rs.s.DB.WithContext(ctx).
		Where("city_key = ?", cityKey(city)).
		Delete(&domain.Route{}).Error
}

// List returns all rules sorted case-insensitively by city.
func (rs *RouteStore) List(ctx context.Context) ([]domain.Route, error) {
	var routes []domain.Route
	if err := rs.s.DB.WithContext(ctx).Order("city_key asc").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func cityKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// normalize trims entries, drops empties and de-duplicates preserving the
// first occurrence's position.
func normalize(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func splitEmails(joined string) []string {
	var out []string
	for _, e := range strings.Split(joined, ",") {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}
