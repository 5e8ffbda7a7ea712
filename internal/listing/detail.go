package listing

import (
	"sort"
	"time"

	"github.com/aura-webinar/portal/internal/models"
)

// NormalizeRoadmap keeps the first item for each day and sorts the result by day.
func NormalizeRoadmap(items []models.RoadmapItem) []models.RoadmapItem {
	seen := make(map[int]struct{}, len(items))
	out := make([]models.RoadmapItem, 0, len(items))
	for _, item := range items {
		if _, dup := seen[item.Day]; dup {
			continue
		}
		seen[item.Day] = struct{}{}
		if item.Description == nil {
			item.Description = models.RoadmapLines{}
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// Detail annotates a single webinar for its detail page.
func Detail(w models.Webinar, now time.Time) AnnotatedWebinar {
	w.RoadmapItems = NormalizeRoadmap(w.RoadmapItems)
	if w.Speaker == "" {
		w.Speaker = w.MentorName
	}
	if w.Platform == "" {
		w.Platform = "Online"
	}
	return Annotate(w, now)
}
