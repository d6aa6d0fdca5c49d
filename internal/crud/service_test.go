package crud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/carelinehq/careadmin/pkg/db"
	"github.com/carelinehq/careadmin/pkg/db/pagination"
	"github.com/carelinehq/careadmin/pkg/tenantctx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Test fixtures: shelves own widgets, widgets own parts. Widgets carry a
// monetary total split across their parts.

type shelf struct {
	ID       int64 `gorm:"primaryKey"`
	TenantID int64
	Name     string

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

type widget struct {
	ID         int64 `gorm:"primaryKey"`
	TenantID   int64
	ShelfID    int64
	Name       string `gorm:"index:ux_widgets_tenant_name,unique"`
	Color      string
	TotalCents int64

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (widget) TableName() string { return "widgets" }

type widgetPart struct {
	ID          int64 `gorm:"primaryKey"`
	TenantID    int64
	WidgetID    int64
	Label       string
	AmountCents int64
	Position    int
}

type stubValidator struct{}

func (stubValidator) Validate(entity any, group string) []FieldError {
	w, ok := entity.(*widget)
	if !ok {
		return nil
	}
	if group == "widget_add" || group == "widget_edit" {
		if w.Name == "" {
			return []FieldError{{Field: "name", Code: "required", Message: "name is required"}}
		}
	}
	return nil
}

type harness struct {
	db       *gorm.DB
	shelves  *Service[shelf]
	widgets  *Service[widget]
	shelfID  int64
	tenantID int64
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := conn.AutoMigrate(&shelf{}, &widget{}, &widgetPart{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("failed to create snowflake node: %v", err)
	}

	deps := Deps{
		DB:        conn,
		Log:       zap.NewNop(),
		GenID:     node,
		Validator: stubValidator{},
	}

	shelves := NewService(deps, Config[shelf]{
		Entity: "shelf",
		New:    func() *shelf { return &shelf{} },
		Init: func(s *shelf, id, tenantID int64) {
			s.ID = id
			s.TenantID = tenantID
		},
		ID: func(s *shelf) int64 { return s.ID },
		Assign: func(s *shelf, p Params) {
			s.Name = p.String("name")
		},
		RelatedInfo: func(s *shelf) map[string]any {
			return map[string]any{"name": s.Name}
		},
	})

	parts := &ChildCollection[widget, widgetPart]{
		Entity: "widget",
		Load: func(ctx context.Context, tx *gorm.DB, parent *widget) ([]*widgetPart, error) {
			var out []*widgetPart
			err := tx.WithContext(ctx).Where("widget_id = ?", parent.ID).Order("position ASC").Find(&out).Error
			return out, err
		},
		ID: func(c *widgetPart) int64 { return c.ID },
		NewChild: func(parent *widget) *widgetPart {
			return &widgetPart{
				ID:       node.Generate().Int64(),
				TenantID: parent.TenantID,
				WidgetID: parent.ID,
			}
		},
		Apply: func(c *widgetPart, input Params) {
			c.Label = input.String("label")
			c.AmountCents = input.Int64("amount_cents")
		},
		SetPosition: func(c *widgetPart, pos int) { c.Position = pos },
	}

	widgets := NewService(deps, Config[widget]{
		Entity:        "widget",
		ChildrenParam: "parts",
		New:           func() *widget { return &widget{} },
		Init: func(w *widget, id, tenantID int64) {
			w.ID = id
			w.TenantID = tenantID
		},
		ID: func(w *widget) int64 { return w.ID },
		Refs: []RefSpec[widget]{
			{
				Param:    "shelf_id",
				Resolve:  ResolveWith(shelves.Store()),
				NotFound: &NotFoundError{Entity: "shelf"},
				Assign: func(w *widget, ref any) {
					w.ShelfID = ref.(*shelf).ID
				},
			},
		},
		Parent:   &ParentSpec{Param: "shelf_id", Column: "shelf_id", Required: true},
		Children: parts,
		Split: &SplitSpec[widget]{
			Amounts: func(w *widget, p Params) (int64, []int64) {
				inputs := p.Children("parts")
				amounts := make([]int64, 0, len(inputs))
				for _, input := range inputs {
					amounts = append(amounts, input.Int64("amount_cents"))
				}
				return w.TotalCents, amounts
			},
		},
		Search: SearchSpec{
			TextColumn:  "name",
			SortColumns: map[string]bool{"name": true},
			FilterColumns: map[string]string{
				"shelf_id": "shelf_id",
				"color":    "color",
			},
		},
		AddGroup:  "widget_add",
		EditGroup: "widget_edit",
		Assign: func(w *widget, p Params) {
			w.Name = p.String("name")
			w.Color = p.String("color")
			w.TotalCents = p.Int64("total_cents")
		},
		RelatedInfo: func(w *widget) map[string]any {
			return map[string]any{"name": w.Name, "shelf_id": w.ShelfID}
		},
	})

	h := &harness{db: conn, shelves: shelves, widgets: widgets, tenantID: 7}

	shelfID, err := shelves.Add(h.ctx(), Params{"name": "east wing"})
	if err != nil {
		t.Fatalf("failed to add shelf: %v", err)
	}
	h.shelfID = shelfID
	return h
}

func (h *harness) ctxFor(tenantID int64, grants map[string]tenantctx.GrantSet) context.Context {
	if grants == nil {
		grants = map[string]tenantctx.GrantSet{
			"shelf":  tenantctx.WildcardGrant(),
			"widget": tenantctx.WildcardGrant(),
		}
	}
	return tenantctx.WithScope(context.Background(), tenantctx.Scope{
		TenantID: snowflake.ID(tenantID),
		Actor:    "tester",
		Grants:   grants,
	})
}

func (h *harness) ctx() context.Context {
	return h.ctxFor(h.tenantID, nil)
}

func (h *harness) addWidget(t *testing.T, p Params) int64 {
	t.Helper()
	if _, ok := p["shelf_id"]; !ok {
		p["shelf_id"] = h.shelfID
	}
	id, err := h.widgets.Add(h.ctx(), p)
	if err != nil {
		t.Fatalf("failed to add widget: %v", err)
	}
	return id
}

func TestAddGetRoundtrip(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{"name": "gear", "color": "red", "total_cents": int64(100)})

	got, err := h.widgets.Get(h.ctx(), id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected widget")
	}
	if got.Name != "gear" || got.Color != "red" || got.TotalCents != 100 {
		t.Fatalf("unexpected state: %+v", got)
	}
	if got.ShelfID != h.shelfID {
		t.Fatalf("expected shelf %d, got %d", h.shelfID, got.ShelfID)
	}
}

func TestGetAbsentReturnsNil(t *testing.T) {
	h := newHarness(t)

	got, err := h.widgets.Get(h.ctx(), 999)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestEditNonexistentNotFound(t *testing.T) {
	h := newHarness(t)

	err := h.widgets.Edit(h.ctx(), 12345, Params{"name": "x", "shelf_id": h.shelfID})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestEditFullReplaceClearsAbsentFields(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{"name": "gear", "color": "red"})

	// color omitted on edit, must be cleared
	err := h.widgets.Edit(h.ctx(), id, Params{"name": "gear", "shelf_id": h.shelfID})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	got, err := h.widgets.Get(h.ctx(), id)
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Color != "" {
		t.Fatalf("expected cleared color, got %q", got.Color)
	}
}

func TestRefNotFoundBeforePersist(t *testing.T) {
	h := newHarness(t)

	_, err := h.widgets.Add(h.ctx(), Params{"name": "gear", "shelf_id": int64(424242)})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected shelf not found, got %v", err)
	}

	var count int64
	if err := h.db.Model(&widget{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no widgets persisted, got %d", count)
	}
}

func TestValidationFailureRollsBack(t *testing.T) {
	h := newHarness(t)

	_, err := h.widgets.Add(h.ctx(), Params{"shelf_id": h.shelfID})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	var count int64
	if err := h.db.Model(&widget{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no widgets persisted, got %d", count)
	}
}

func TestListRequiresParent(t *testing.T) {
	h := newHarness(t)

	_, err := h.widgets.List(h.ctx(), Params{})
	if !errors.Is(err, ErrParentNotSpecified) {
		t.Fatalf("expected parent not specified, got %v", err)
	}
}

func TestListFiltersByParent(t *testing.T) {
	h := newHarness(t)

	otherShelf, err := h.shelves.Add(h.ctx(), Params{"name": "west wing"})
	if err != nil {
		t.Fatalf("failed to add shelf: %v", err)
	}

	h.addWidget(t, Params{"name": "a"})
	h.addWidget(t, Params{"name": "b", "shelf_id": otherShelf})

	got, err := h.widgets.List(h.ctx(), Params{"shelf_id": h.shelfID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "a" {
		t.Fatalf("unexpected listing: %+v", got)
	}
}

func TestSearchPagination(t *testing.T) {
	h := newHarness(t)

	for _, name := range []string{"alpha", "beta", "gamma"} {
		h.addWidget(t, Params{"name": name})
	}

	page1, info, err := h.widgets.Search(h.ctx(), SearchQuery{
		Pagination: pagination.Pagination{PageSize: 2},
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(page1) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page1))
	}
	if !info.HasMore || info.NextPageToken == "" {
		t.Fatalf("expected next page, got %+v", info)
	}

	page2, info2, err := h.widgets.Search(h.ctx(), SearchQuery{
		Pagination: pagination.Pagination{PageToken: info.NextPageToken, PageSize: 2},
	})
	if err != nil {
		t.Fatalf("search page 2 failed: %v", err)
	}
	if len(page2) != 1 {
		t.Fatalf("expected 1 item, got %d", len(page2))
	}
	if info2.HasMore {
		t.Fatal("expected last page")
	}
	if page1[0].ID >= page1[1].ID || page1[1].ID >= page2[0].ID {
		t.Fatal("expected ascending id ordering across pages")
	}
}

func TestSearchTermAndFilter(t *testing.T) {
	h := newHarness(t)

	h.addWidget(t, Params{"name": "gear small", "color": "red"})
	h.addWidget(t, Params{"name": "gear large", "color": "blue"})
	h.addWidget(t, Params{"name": "bolt", "color": "red"})

	got, _, err := h.widgets.Search(h.ctx(), SearchQuery{
		Term:    "gear",
		Filters: Params{"color": "red"},
	})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 1 || got[0].Name != "gear small" {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestRemoveTwiceNotFound(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{"name": "gear"})

	if err := h.widgets.Remove(h.ctx(), id); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	err := h.widgets.Remove(h.ctx(), id)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second remove, got %v", err)
	}
}

func TestRemoveBulkEmptyNotFound(t *testing.T) {
	h := newHarness(t)

	err := h.widgets.RemoveBulk(h.ctx(), nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemoveBulkPartialDeletesNothing(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{"name": "gear"})

	err := h.widgets.RemoveBulk(h.ctx(), []int64{id, 424242})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	got, err := h.widgets.Get(h.ctx(), id)
	if err != nil || got == nil {
		t.Fatalf("expected widget to survive, got %v (err %v)", got, err)
	}
}

func TestRemoveBulkDeletesAll(t *testing.T) {
	h := newHarness(t)

	a := h.addWidget(t, Params{"name": "a"})
	b := h.addWidget(t, Params{"name": "b"})

	if err := h.widgets.RemoveBulk(h.ctx(), []int64{a, b, a}); err != nil {
		t.Fatalf("remove bulk failed: %v", err)
	}

	var count int64
	if err := h.db.Model(&widget{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected empty table, got %d rows", count)
	}
}

func TestRelatedInfo(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{"name": "gear"})

	info, err := h.widgets.RelatedInfo(h.ctx(), []int64{id})
	if err != nil {
		t.Fatalf("related info failed: %v", err)
	}
	if info[id]["name"] != "gear" {
		t.Fatalf("unexpected projection: %+v", info)
	}

	_, err = h.widgets.RelatedInfo(h.ctx(), []int64{424242})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for unknown ids, got %v", err)
	}
}

func TestTenantIsolation(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{"name": "gear"})

	otherTenant := h.ctxFor(99, nil)
	got, err := h.widgets.Get(otherTenant, id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatal("expected cross-tenant read to behave as absent")
	}

	err = h.widgets.Edit(otherTenant, id, Params{"name": "stolen", "shelf_id": h.shelfID})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on cross-tenant edit, got %v", err)
	}
}

func TestGrantSetScoping(t *testing.T) {
	h := newHarness(t)

	a := h.addWidget(t, Params{"name": "a"})
	b := h.addWidget(t, Params{"name": "b"})

	restricted := h.ctxFor(h.tenantID, map[string]tenantctx.GrantSet{
		"shelf":  tenantctx.WildcardGrant(),
		"widget": tenantctx.IDGrant(a),
	})

	got, err := h.widgets.Get(restricted, b)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatal("expected ungranted id to behave as absent")
	}

	listed, err := h.widgets.List(restricted, Params{"shelf_id": h.shelfID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != a {
		t.Fatalf("expected only granted widget, got %+v", listed)
	}
}

func TestAuthContextMissing(t *testing.T) {
	h := newHarness(t)

	_, err := h.widgets.Get(context.Background(), 1)
	if !errors.Is(err, tenantctx.ErrAuthContextMissing) {
		t.Fatalf("expected auth context missing, got %v", err)
	}
}

func TestConflictOnDuplicateName(t *testing.T) {
	h := newHarness(t)

	h.addWidget(t, Params{"name": "gear"})

	_, err := h.widgets.Add(h.ctx(), Params{"name": "gear", "shelf_id": h.shelfID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestSplitExceedingTotalFails(t *testing.T) {
	h := newHarness(t)

	_, err := h.widgets.Add(h.ctx(), Params{
		"name":        "gear",
		"shelf_id":    h.shelfID,
		"total_cents": int64(100),
		"parts": []Params{
			{"label": "x", "amount_cents": int64(60)},
			{"label": "y", "amount_cents": int64(50)},
		},
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
	var negative *NegativeRemainingTotalError
	if !errors.As(err, &negative) {
		t.Fatalf("expected negative remaining total error, got %T", err)
	}
	if negative.Total != 100 || negative.Sum != 110 {
		t.Fatalf("unexpected amounts: %+v", negative)
	}
}

func TestSplitWithinTotalSucceeds(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{
		"name":        "gear",
		"total_cents": int64(100),
		"parts": []Params{
			{"label": "x", "amount_cents": int64(60)},
			{"label": "y", "amount_cents": int64(40)},
		},
	})

	var parts []*widgetPart
	if err := h.db.Where("widget_id = ?", id).Order("position ASC").Find(&parts).Error; err != nil {
		t.Fatalf("load parts failed: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Position != 1 || parts[1].Position != 2 {
		t.Fatalf("expected dense positions, got %d/%d", parts[0].Position, parts[1].Position)
	}
}

func TestChildReconciliation(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{
		"name":        "gear",
		"total_cents": int64(100),
		"parts": []Params{
			{"label": "first", "amount_cents": int64(10)},
			{"label": "second", "amount_cents": int64(20)},
		},
	})

	var before []*widgetPart
	if err := h.db.Where("widget_id = ?", id).Order("position ASC").Find(&before).Error; err != nil {
		t.Fatalf("load parts failed: %v", err)
	}
	if len(before) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(before))
	}

	// keep the second (updated, now first), add one new, drop the first
	err := h.widgets.Edit(h.ctx(), id, Params{
		"name":        "gear",
		"shelf_id":    h.shelfID,
		"total_cents": int64(100),
		"parts": []Params{
			{"id": before[1].ID, "label": "second updated", "amount_cents": int64(25)},
			{"label": "third", "amount_cents": int64(5)},
		},
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}

	var after []*widgetPart
	if err := h.db.Where("widget_id = ?", id).Order("position ASC").Find(&after).Error; err != nil {
		t.Fatalf("load parts failed: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(after))
	}
	if after[0].ID != before[1].ID || after[0].Label != "second updated" || after[0].Position != 1 {
		t.Fatalf("unexpected first part: %+v", after[0])
	}
	if after[1].Label != "third" || after[1].Position != 2 {
		t.Fatalf("unexpected second part: %+v", after[1])
	}
	for _, part := range after {
		if part.ID == before[0].ID {
			t.Fatal("expected dropped part to be deleted")
		}
	}
}

func TestRefResolutionRunsOnTransaction(t *testing.T) {
	h := newHarness(t)

	scope, err := tenantctx.FromContext(h.ctx())
	if err != nil {
		t.Fatalf("scope failed: %v", err)
	}
	resolve := ResolveWith(h.shelves.Store())

	sentinel := errors.New("force rollback")
	err = h.db.Transaction(func(tx *gorm.DB) error {
		staged := &shelf{ID: 4242, TenantID: h.tenantID, Name: "staged"}
		if err := tx.Create(staged).Error; err != nil {
			return err
		}
		got, err := resolve(context.Background(), tx, scope, 4242)
		if err != nil {
			return err
		}
		if got == nil {
			t.Fatal("expected staged shelf visible inside its own transaction")
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected forced rollback, got %v", err)
	}

	got, err := resolve(context.Background(), h.db, scope, 4242)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got != nil {
		t.Fatal("expected rolled back shelf to stay absent")
	}
}

func TestRemoveBlockedByReferenceConflicts(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{"name": "gear"})

	if err := h.db.Exec(`CREATE TABLE widget_tags (id integer PRIMARY KEY, widget_id integer NOT NULL REFERENCES widgets (id))`).Error; err != nil {
		t.Fatalf("create table failed: %v", err)
	}
	if err := h.db.Exec(`INSERT INTO widget_tags (id, widget_id) VALUES (1, ?)`, id).Error; err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	err := h.widgets.Remove(h.ctx(), id)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on referenced delete, got %v", err)
	}
	err = h.widgets.RemoveBulk(h.ctx(), []int64{id})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on referenced bulk delete, got %v", err)
	}

	got, err := h.widgets.Get(h.ctx(), id)
	if err != nil || got == nil {
		t.Fatalf("expected widget to survive, got %v (err %v)", got, err)
	}
}

func TestSearchSortedReturnsEachRowOnce(t *testing.T) {
	h := newHarness(t)

	for _, name := range []string{"zebra", "mango", "apple"} {
		h.addWidget(t, Params{"name": name})
	}

	page, info, err := h.widgets.Search(h.ctx(), SearchQuery{
		Pagination: pagination.Pagination{PageSize: 2},
		SortBy:     "name",
	})
	if err != nil {
		t.Fatalf("sorted search failed: %v", err)
	}
	if len(page) != 2 || page[0].Name != "apple" || page[1].Name != "mango" {
		t.Fatalf("unexpected sorted page: %+v", page)
	}
	if info.HasMore || info.NextPageToken != "" {
		t.Fatalf("expected no cursor under custom sort, got %+v", info)
	}

	_, cursor, err := h.widgets.Search(h.ctx(), SearchQuery{
		Pagination: pagination.Pagination{PageSize: 2},
	})
	if err != nil || cursor.NextPageToken == "" {
		t.Fatalf("expected identity-ordered cursor, got %+v (err %v)", cursor, err)
	}

	_, _, err = h.widgets.Search(h.ctx(), SearchQuery{
		Pagination: pagination.Pagination{PageToken: cursor.NextPageToken, PageSize: 2},
		SortBy:     "name",
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected token with custom sort to fail validation, got %v", err)
	}
}

func TestDuplicateUnknownChildIDsRejected(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{"name": "gear", "total_cents": int64(100)})

	err := h.widgets.Edit(h.ctx(), id, Params{
		"name":        "gear",
		"shelf_id":    h.shelfID,
		"total_cents": int64(100),
		"parts": []Params{
			{"id": int64(555001), "label": "a", "amount_cents": int64(1)},
			{"id": int64(555001), "label": "b", "amount_cents": int64(2)},
		},
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}

	var count int64
	if err := h.db.Model(&widgetPart{}).Where("widget_id = ?", id).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no parts persisted, got %d", count)
	}
}

func TestDuplicateChildIDsRejected(t *testing.T) {
	h := newHarness(t)

	id := h.addWidget(t, Params{
		"name":        "gear",
		"total_cents": int64(100),
		"parts": []Params{
			{"label": "first", "amount_cents": int64(10)},
		},
	})

	var parts []*widgetPart
	if err := h.db.Where("widget_id = ?", id).Find(&parts).Error; err != nil {
		t.Fatalf("load parts failed: %v", err)
	}

	err := h.widgets.Edit(h.ctx(), id, Params{
		"name":        "gear",
		"shelf_id":    h.shelfID,
		"total_cents": int64(100),
		"parts": []Params{
			{"id": parts[0].ID, "label": "a", "amount_cents": int64(1)},
			{"id": parts[0].ID, "label": "b", "amount_cents": int64(2)},
		},
	})
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected validation failure, got %v", err)
	}
}
