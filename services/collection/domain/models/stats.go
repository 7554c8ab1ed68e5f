package models

// GroupCount is the number of items carrying one group value.
type GroupCount struct {
	Group string `json:"group"`
	Count int    `json:"count"`
}

// Stats summarises a collection.
type Stats struct {
	Total       int          `json:"total"`
	Active      int          `json:"active"`
	Groups      int          `json:"groups"`
	GroupCounts []GroupCount `json:"group_counts"`
}

// Stats counts items per group value in first-appearance order. Group values
// that are not registered (DefaultGroup, permissive assignments) are counted too.
func (c *Collection) Stats() Stats {
	s := Stats{
		Total:       len(c.items),
		Groups:      len(c.groups),
		GroupCounts: make([]GroupCount, 0),
	}
	pos := make(map[string]int)
	for _, item := range c.items {
		if item.Status == StatusActive {
			s.Active++
		}
		i, ok := pos[item.Group]
		if !ok {
			i = len(s.GroupCounts)
			pos[item.Group] = i
			s.GroupCounts = append(s.GroupCounts, GroupCount{Group: item.Group})
		}
		s.GroupCounts[i].Count++
	}
	return s
}
