package services

import (
	"fmt"
	"sync"
	"time"

	model "github.com/Ekene07/CorrTrack/models"
	"gorm.io/gorm"
)

// HierarchySnapshot is a point-in-time view of the office tree and the
// organizational headships, loaded in one pass so permission checks never
// issue per-record queries.
type HierarchySnapshot struct {
	Offices             map[string]*model.Office
	DivisionHead        map[string]string // division id -> general manager user id
	DirectorateHead     map[string]string // directorate id -> executive director user id
	DepartmentHead      map[string]string // department id -> head of department user id
	DivisionDirectorate map[string]string // division id -> directorate id
	DepartmentDivision  map[string]string // department id -> division id
	LoadedAt            time.Time
}

// OfficeHierarchyService resolves office ancestry and organizational
// headships, with a short-lived cache in front of the database.
type OfficeHierarchyService struct {
	db       *gorm.DB
	mu       sync.Mutex
	snapshot *HierarchySnapshot
	ttl      time.Duration
}

func NewOfficeHierarchyService(db *gorm.DB) *OfficeHierarchyService {
	return &OfficeHierarchyService{db: db, ttl: 5 * time.Minute}
}

// Snapshot returns the cached hierarchy, reloading it once the TTL lapses.
func (h *OfficeHierarchyService) Snapshot() (*HierarchySnapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.snapshot != nil && time.Since(h.snapshot.LoadedAt) < h.ttl {
		return h.snapshot, nil
	}
	snap, err := h.load()
	if err != nil {
		return nil, err
	}
	h.snapshot = snap
	return snap, nil
}

// Invalidate drops the cached snapshot so the next read reloads it.
func (h *OfficeHierarchyService) Invalidate() {
	h.mu.Lock()
	h.snapshot = nil
	h.mu.Unlock()
}

func (h *OfficeHierarchyService) load() (*HierarchySnapshot, error) {
	snap := &HierarchySnapshot{
		Offices:             map[string]*model.Office{},
		DivisionHead:        map[string]string{},
		DirectorateHead:     map[string]string{},
		DepartmentHead:      map[string]string{},
		DivisionDirectorate: map[string]string{},
		DepartmentDivision:  map[string]string{},
		LoadedAt:            time.Now(),
	}

	var offices []model.Office
	if err := h.db.Find(&offices).Error; err != nil {
		return nil, fmt.Errorf("failed to load offices: %w", err)
	}
	for i := range offices {
		snap.Offices[offices[i].ID] = &offices[i]
	}

	var divisions []model.Division
	if err := h.db.Find(&divisions).Error; err != nil {
		return nil, fmt.Errorf("failed to load divisions: %w", err)
	}
	for i := range divisions {
		d := &divisions[i]
		if d.GeneralManagerID != nil {
			snap.DivisionHead[d.ID] = *d.GeneralManagerID
		}
		snap.DivisionDirectorate[d.ID] = d.DirectorateID
	}

	var directorates []model.Directorate
	if err := h.db.Find(&directorates).Error; err != nil {
		return nil, fmt.Errorf("failed to load directorates: %w", err)
	}
	for i := range directorates {
		d := &directorates[i]
		if d.ExecutiveDirectorID != nil {
			snap.DirectorateHead[d.ID] = *d.ExecutiveDirectorID
		}
	}

	var departments []model.Department
	if err := h.db.Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to load departments: %w", err)
	}
	for i := range departments {
		d := &departments[i]
		if d.HeadOfDepartmentID != nil {
			snap.DepartmentHead[d.ID] = *d.HeadOfDepartmentID
		}
		snap.DepartmentDivision[d.ID] = d.DivisionID
	}

	return snap, nil
}

// IsUnder walks parent links to report whether officeID sits below
// ancestorID in the office tree. A cycle in the data terminates the walk.
func (snap *HierarchySnapshot) IsUnder(officeID, ancestorID string) bool {
	seen := map[string]bool{}
	current := officeID
	for current != "" && !seen[current] {
		if current == ancestorID {
			return true
		}
		seen[current] = true
		office, ok := snap.Offices[current]
		if !ok || office.ParentID == nil {
			return false
		}
		current = *office.ParentID
	}
	return false
}
