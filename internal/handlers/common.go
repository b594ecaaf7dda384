package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"recipebook-backend/internal/services"
)

// parseListFilter extracts the recipe list filter from query parameters.
// Multiple 'cuisines' keys and comma-separated values are both supported.
func parseListFilter(c *fiber.Ctx) services.RecipeListFilter {
	return services.RecipeListFilter{
		AuthorID:   c.Query("author"),
		CuisineIDs: parseCuisines(c),
		Search:     c.Query("q"),
		SortBy:     c.Query("sort_by", "created_at"),
		SortDir:    c.Query("sort_dir", "desc"),
		Page:       c.QueryInt("page", 1),
		Limit:      c.QueryInt("limit", services.DefaultListLimit),
	}
}

// parseCuisines collects cuisine ids from repeated and comma-separated
// 'cuisines' query parameters, deduplicated
func parseCuisines(c *fiber.Ctx) []string {
	cuisineMap := make(map[string]struct{})

	args := c.Context().QueryArgs()
	args.VisitAll(func(key, value []byte) {
		if string(key) == "cuisines" {
			vals := strings.Split(string(value), ",")
			for _, v := range vals {
				v = strings.TrimSpace(v)
				if v != "" {
					cuisineMap[v] = struct{}{}
				}
			}
		}
	})

	if len(cuisineMap) == 0 {
		return nil
	}

	cuisines := make([]string, 0, len(cuisineMap))
	for k := range cuisineMap {
		cuisines = append(cuisines, k)
	}

	return cuisines
}

// authenticatedUser returns the user id stored by the auth middleware
func authenticatedUser(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}
