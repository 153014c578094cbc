package services

import (
	"testing"

	model "github.com/Ekene07/CorrTrack/models"
	"github.com/stretchr/testify/assert"
)

func TestAllowedArchiveLevels(t *testing.T) {
	dept := "dept-1"

	t.Run("superuser gets every level", func(t *testing.T) {
		levels := AllowedArchiveLevels(model.User{IsSuperuser: true})
		assert.Equal(t, []model.ArchiveLevel{
			model.ArchiveLevelDepartment,
			model.ArchiveLevelDivision,
			model.ArchiveLevelDirectorate,
		}, levels)
	})

	t.Run("department officer with junior grade", func(t *testing.T) {
		levels := AllowedArchiveLevels(model.User{GradeLevel: "OFF1", DepartmentID: &dept})
		assert.Equal(t, []model.ArchiveLevel{model.ArchiveLevelDepartment}, levels)
	})

	t.Run("junior grade without a department gets nothing", func(t *testing.T) {
		levels := AllowedArchiveLevels(model.User{GradeLevel: "OFF1"})
		assert.Empty(t, levels)
	})

	t.Run("MSS grade adds division", func(t *testing.T) {
		levels := AllowedArchiveLevels(model.User{GradeLevel: "MSS1", DepartmentID: &dept})
		assert.Equal(t, []model.ArchiveLevel{
			model.ArchiveLevelDepartment,
			model.ArchiveLevelDivision,
		}, levels)
	})

	t.Run("EDCS grade adds directorate", func(t *testing.T) {
		levels := AllowedArchiveLevels(model.User{GradeLevel: "EDCS", DepartmentID: &dept})
		assert.Equal(t, []model.ArchiveLevel{
			model.ArchiveLevelDepartment,
			model.ArchiveLevelDivision,
			model.ArchiveLevelDirectorate,
		}, levels)
	})
}

func testSnapshot() *HierarchySnapshot {
	return &HierarchySnapshot{
		Offices:             map[string]*model.Office{},
		DivisionHead:        map[string]string{"div-1": "gm-1"},
		DirectorateHead:     map[string]string{"dir-1": "ed-1"},
		DepartmentHead:      map[string]string{"dept-1": "hod-1"},
		DivisionDirectorate: map[string]string{"div-1": "dir-1"},
		DepartmentDivision:  map[string]string{"dept-1": "div-1"},
	}
}

func TestArchiveVisibleTo(t *testing.T) {
	dept := "dept-1"
	div := "div-1"
	dir := "dir-1"
	snap := testSnapshot()

	t.Run("superuser sees everything", func(t *testing.T) {
		rec := &model.Correspondence{ArchiveLevel: model.ArchiveLevelDirectorate, DivisionID: &div}
		assert.True(t, archiveVisibleTo(rec, &model.User{IsSuperuser: true}, snap))
	})

	t.Run("department level matches by department", func(t *testing.T) {
		rec := &model.Correspondence{ArchiveLevel: model.ArchiveLevelDepartment, DepartmentID: &dept}
		assert.True(t, archiveVisibleTo(rec, &model.User{ID: "u1", DepartmentID: &dept}, snap))

		other := "dept-2"
		assert.False(t, archiveVisibleTo(rec, &model.User{ID: "u1", DepartmentID: &other}, snap))
		assert.False(t, archiveVisibleTo(rec, &model.User{ID: "u1"}, snap))
	})

	t.Run("division level requires the designated head", func(t *testing.T) {
		rec := &model.Correspondence{ArchiveLevel: model.ArchiveLevelDivision, DivisionID: &div}

		head := &model.User{ID: "gm-1", GradeLevel: "MSS1", DivisionID: &div}
		assert.True(t, archiveVisibleTo(rec, head, snap))

		// Same division, leadership grade, but not the designated head.
		peer := &model.User{ID: "other", GradeLevel: "MSS1", DivisionID: &div}
		assert.False(t, archiveVisibleTo(rec, peer, snap))

		// Head of a different division.
		otherDiv := "div-2"
		outsider := &model.User{ID: "gm-1", GradeLevel: "MSS1", DivisionID: &otherDiv}
		assert.False(t, archiveVisibleTo(rec, outsider, snap))
	})

	t.Run("directorate level requires the directorate head", func(t *testing.T) {
		rec := &model.Correspondence{ArchiveLevel: model.ArchiveLevelDirectorate, DivisionID: &div}

		ed := &model.User{ID: "ed-1", GradeLevel: "EDCS", DirectorateID: &dir}
		assert.True(t, archiveVisibleTo(rec, ed, snap))

		// Right directorate, wrong person.
		other := &model.User{ID: "someone", GradeLevel: "EDCS", DirectorateID: &dir}
		assert.False(t, archiveVisibleTo(rec, other, snap))
	})

	t.Run("unclassified record is hidden", func(t *testing.T) {
		rec := &model.Correspondence{DepartmentID: &dept}
		assert.False(t, archiveVisibleTo(rec, &model.User{ID: "u1", DepartmentID: &dept}, snap))
	})
}

func TestFilterArchive(t *testing.T) {
	dept := "dept-1"
	div := "div-1"
	snap := testSnapshot()

	records := []model.Correspondence{
		{ID: "r1", ArchiveLevel: model.ArchiveLevelDepartment, DepartmentID: &dept},
		{ID: "r2", ArchiveLevel: model.ArchiveLevelDivision, DivisionID: &div},
		{ID: "r3", ArchiveLevel: model.ArchiveLevelDirectorate, DivisionID: &div},
	}

	t.Run("department officer sees only their department records", func(t *testing.T) {
		user := &model.User{ID: "u1", DepartmentID: &dept}
		visible := FilterArchive(records, user, snap)
		assert.Len(t, visible, 1)
		assert.Equal(t, "r1", visible[0].ID)
	})

	t.Run("division member with rank but not headship sees no division records", func(t *testing.T) {
		user := &model.User{ID: "staffer", GradeLevel: "MSS2", DivisionID: &div}
		visible := FilterArchive(records, user, snap)
		assert.Empty(t, visible)
	})

	t.Run("superuser sees all", func(t *testing.T) {
		visible := FilterArchive(records, &model.User{IsSuperuser: true}, snap)
		assert.Len(t, visible, 3)
	})
}

func TestHierarchyIsUnder(t *testing.T) {
	root := "office-root"
	mid := "office-mid"
	leaf := "office-leaf"
	snap := &HierarchySnapshot{
		Offices: map[string]*model.Office{
			root: {ID: root},
			mid:  {ID: mid, ParentID: &root},
			leaf: {ID: leaf, ParentID: &mid},
		},
	}

	assert.True(t, snap.IsUnder(leaf, root))
	assert.True(t, snap.IsUnder(leaf, mid))
	assert.True(t, snap.IsUnder(root, root))
	assert.False(t, snap.IsUnder(root, leaf))
	assert.False(t, snap.IsUnder("missing", root))

	// A parent cycle must not hang the walk.
	a, b := "office-a", "office-b"
	cyclic := &HierarchySnapshot{
		Offices: map[string]*model.Office{
			a: {ID: a, ParentID: &b},
			b: {ID: b, ParentID: &a},
		},
	}
	assert.False(t, cyclic.IsUnder(a, root))
}
