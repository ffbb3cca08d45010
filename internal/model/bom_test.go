package model

import "testing"

func int64p(v int64) *int64 { return &v }

func TestBuildBOMTree(t *testing.T) {
	items := []BOMItem{
		{ID: 1, Name: "chassis"},
		{ID: 2, ParentID: int64p(1), Name: "frame"},
		{ID: 3, ParentID: int64p(1), Name: "panel"},
		{ID: 4, ParentID: int64p(2), Name: "bracket"},
		{ID: 5, Name: "harness"},
	}

	roots := BuildBOMTree(items)
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}

	chassis := roots[0]
	if chassis.Name != "chassis" || len(chassis.Children) != 2 {
		t.Fatalf("chassis = %q with %d children, want 2", chassis.Name, len(chassis.Children))
	}
	if chassis.Children[0].Name != "frame" || chassis.Children[1].Name != "panel" {
		t.Errorf("children order = [%s, %s], want [frame, panel]",
			chassis.Children[0].Name, chassis.Children[1].Name)
	}
	if len(chassis.Children[0].Children) != 1 || chassis.Children[0].Children[0].Name != "bracket" {
		t.Errorf("frame should contain bracket")
	}
	if roots[1].Name != "harness" {
		t.Errorf("second root = %q, want harness", roots[1].Name)
	}
}

func TestBuildBOMTreeMissingParentBecomesRoot(t *testing.T) {
	items := []BOMItem{
		{ID: 1, ParentID: int64p(99), Name: "orphan"},
	}

	roots := BuildBOMTree(items)
	if len(roots) != 1 || roots[0].Name != "orphan" {
		t.Fatalf("orphan row should surface as a root, got %+v", roots)
	}
}

func TestBuildBOMTreeEmpty(t *testing.T) {
	if roots := BuildBOMTree(nil); len(roots) != 0 {
		t.Errorf("got %d roots for empty input", len(roots))
	}
}
