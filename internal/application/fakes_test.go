package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/circleshare/service-sharing/internal/domain"
	bookingDomain "github.com/circleshare/service-sharing/internal/domain/booking"
	itemDomain "github.com/circleshare/service-sharing/internal/domain/item"
	requestDomain "github.com/circleshare/service-sharing/internal/domain/request"
	userDomain "github.com/circleshare/service-sharing/internal/domain/user"
	"github.com/circleshare/service-sharing/internal/pkg/kafka"
)

// --- booking repository fake ---

type fakeBookingRepo struct {
	mu         sync.Mutex
	bookings   map[uuid.UUID]*bookingDomain.Booking
	versions   map[uuid.UUID]int64
	itemOwners map[uuid.UUID]uuid.UUID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:   make(map[uuid.UUID]*bookingDomain.Booking),
		versions:   make(map[uuid.UUID]int64),
		itemOwners: make(map[uuid.UUID]uuid.UUID),
	}
}

func (f *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[bk.ID()] = bk
	f.versions[bk.ID()] = bk.Version()
	return nil
}

func (f *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bk, ok := f.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

// Update mirrors the compare-and-swap semantics of the SQL implementation:
// the write applies only when the persisted version is one behind.
func (f *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.versions[bk.ID()] != bk.Version()-1 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	f.bookings[bk.ID()] = bk
	f.versions[bk.ID()] = bk.Version()
	return nil
}

func (f *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[id]; !ok {
		return domain.NewNotFoundError("Booking", id.String())
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) ListByBooker(_ context.Context, bookerID uuid.UUID, sel bookingDomain.Selection, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.listWhere(func(bk *bookingDomain.Booking) bool {
		return bk.BookerID() == bookerID
	}, sel, page), nil
}

func (f *fakeBookingRepo) ListByOwner(_ context.Context, ownerID uuid.UUID, sel bookingDomain.Selection, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return f.listWhere(func(bk *bookingDomain.Booking) bool {
		return f.itemOwners[bk.ItemID()] == ownerID
	}, sel, page), nil
}

func (f *fakeBookingRepo) listWhere(match func(*bookingDomain.Booking) bool, sel bookingDomain.Selection, page domain.PageRequest) []*bookingDomain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*bookingDomain.Booking
	for _, bk := range f.bookings {
		if !match(bk) {
			continue
		}
		switch sel.Filter {
		case bookingDomain.FilterAll:
		case bookingDomain.FilterFuture:
			if !bk.Start().After(sel.Now) {
				continue
			}
		case bookingDomain.FilterPast:
			if !bk.End().Before(sel.Now) {
				continue
			}
		case bookingDomain.FilterCurrent:
			if bk.Start().After(sel.Now) || !bk.End().After(sel.Now) {
				continue
			}
		default:
			state, _ := sel.Filter.State()
			if bk.State() != state {
				continue
			}
		}
		out = append(out, bk)
	}

	if sel.OrderByEnd() {
		sort.Slice(out, func(i, j int) bool { return out[i].End().After(out[j].End()) })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].Start().After(out[j].Start()) })
	}

	lo := page.Offset()
	if lo > len(out) {
		return nil
	}
	hi := lo + page.Limit()
	if hi > len(out) {
		hi = len(out)
	}
	return out[lo:hi]
}

func (f *fakeBookingRepo) ListAll(_ context.Context, page domain.PageRequest) ([]*bookingDomain.Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*bookingDomain.Booking
	for _, bk := range f.bookings {
		out = append(out, bk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })

	total := int64(len(out))
	lo := page.Offset()
	if lo > len(out) {
		return nil, total, nil
	}
	hi := lo + page.Limit()
	if hi > len(out) {
		hi = len(out)
	}
	return out[lo:hi], total, nil
}

func (f *fakeBookingRepo) CountByState(_ context.Context) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range f.bookings {
		counts[string(bk.State())]++
	}
	return counts, nil
}

func (f *fakeBookingRepo) LastForItem(_ context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *bookingDomain.Booking
	for _, bk := range f.bookings {
		if bk.ItemID() != itemID || bk.State() != bookingDomain.StateApproved || bk.Start().After(now) {
			continue
		}
		if best == nil || bk.Start().After(best.Start()) {
			best = bk
		}
	}
	return best, nil
}

func (f *fakeBookingRepo) NextForItem(_ context.Context, itemID uuid.UUID, now time.Time) (*bookingDomain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var best *bookingDomain.Booking
	for _, bk := range f.bookings {
		if bk.ItemID() != itemID || bk.State() != bookingDomain.StateApproved || bk.Start().Before(now) {
			continue
		}
		if best == nil || bk.Start().Before(best.Start()) {
			best = bk
		}
	}
	return best, nil
}

func (f *fakeBookingRepo) ListApprovedForItems(_ context.Context, itemIDs []uuid.UUID) ([]*bookingDomain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var out []*bookingDomain.Booking
	for _, bk := range f.bookings {
		if wanted[bk.ItemID()] && bk.State() == bookingDomain.StateApproved {
			out = append(out, bk)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start().Before(out[j].Start()) })
	return out, nil
}

func (f *fakeBookingRepo) HasFinishedApprovedBooking(_ context.Context, bookerID, itemID uuid.UUID, now time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, bk := range f.bookings {
		if bk.BookerID() == bookerID && bk.ItemID() == itemID &&
			bk.State() == bookingDomain.StateApproved && bk.End().Before(now) {
			return true, nil
		}
	}
	return false, nil
}

// --- item repository fake ---

type fakeItemRepo struct {
	mu       sync.Mutex
	items    map[uuid.UUID]*itemDomain.Item
	comments []*itemDomain.Comment
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[uuid.UUID]*itemDomain.Item)}
}

func (f *fakeItemRepo) Save(_ context.Context, it *itemDomain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[it.ID()] = it
	return nil
}

func (f *fakeItemRepo) FindByID(_ context.Context, id uuid.UUID) (*itemDomain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("Item", id.String())
	}
	return it, nil
}

func (f *fakeItemRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*itemDomain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uuid.UUID]*itemDomain.Item, len(ids))
	for _, id := range ids {
		if it, ok := f.items[id]; ok {
			out[id] = it
		}
	}
	return out, nil
}

func (f *fakeItemRepo) FindByOwnerID(_ context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]*itemDomain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*itemDomain.Item
	for _, it := range f.items {
		if it.OwnerID() == ownerID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	lo := page.Offset()
	if lo > len(out) {
		return nil, nil
	}
	hi := lo + page.Limit()
	if hi > len(out) {
		hi = len(out)
	}
	return out[lo:hi], nil
}

func (f *fakeItemRepo) FindByRequestIDs(_ context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]*itemDomain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(requestIDs))
	for _, id := range requestIDs {
		wanted[id] = true
	}
	out := make(map[uuid.UUID][]*itemDomain.Item)
	for _, it := range f.items {
		if it.RequestID() != nil && wanted[*it.RequestID()] {
			out[*it.RequestID()] = append(out[*it.RequestID()], it)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Search(_ context.Context, text string, page domain.PageRequest) ([]*itemDomain.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*itemDomain.Item
	for _, it := range f.items {
		if it.IsAvailable() && (containsFold(it.Name(), text) || containsFold(it.Description(), text)) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out, nil
}

func (f *fakeItemRepo) Update(_ context.Context, it *itemDomain.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[it.ID()]; !ok {
		return domain.NewNotFoundError("Item", it.ID().String())
	}
	f.items[it.ID()] = it
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return domain.NewNotFoundError("Item", id.String())
	}
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) SaveComment(_ context.Context, c *itemDomain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.comments = append(f.comments, c)
	return nil
}

func (f *fakeItemRepo) FindCommentsByItemID(_ context.Context, itemID uuid.UUID) ([]*itemDomain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*itemDomain.Comment
	for _, c := range f.comments {
		if c.ItemID() == itemID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	return out, nil
}

func (f *fakeItemRepo) FindCommentsByItemIDs(_ context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*itemDomain.Comment, error) {
	out := make(map[uuid.UUID][]*itemDomain.Comment)
	for _, id := range itemIDs {
		comments, _ := f.FindCommentsByItemID(context.Background(), id)
		if len(comments) > 0 {
			out[id] = comments
		}
	}
	return out, nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// --- user repository fake ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*userDomain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*userDomain.User)}
}

func (f *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email() == u.Email() {
			return domain.NewConflictError("email already in use")
		}
	}
	f.users[u.ID()] = u
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*userDomain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", id.String())
	}
	return u, nil
}

func (f *fakeUserRepo) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]*userDomain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[uuid.UUID]*userDomain.User, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Exists(_ context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[id]
	return ok, nil
}

func (f *fakeUserRepo) List(_ context.Context, page domain.PageRequest) ([]*userDomain.User, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*userDomain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	total := int64(len(out))
	lo := page.Offset()
	if lo > len(out) {
		return nil, total, nil
	}
	hi := lo + page.Limit()
	if hi > len(out) {
		hi = len(out)
	}
	return out[lo:hi], total, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[u.ID()]; !ok {
		return domain.NewNotFoundError("User", u.ID().String())
	}
	f.users[u.ID()] = u
	return nil
}

func (f *fakeUserRepo) Upsert(_ context.Context, u *userDomain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[u.ID()] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return domain.NewNotFoundError("User", id.String())
	}
	delete(f.users, id)
	return nil
}

// --- request repository fake ---

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*requestDomain.ItemRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[uuid.UUID]*requestDomain.ItemRequest)}
}

func (f *fakeRequestRepo) Save(_ context.Context, r *requestDomain.ItemRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests[r.ID()] = r
	return nil
}

func (f *fakeRequestRepo) FindByID(_ context.Context, id uuid.UUID) (*requestDomain.ItemRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("ItemRequest", id.String())
	}
	return r, nil
}

func (f *fakeRequestRepo) FindByRequesterID(_ context.Context, requesterID uuid.UUID) ([]*requestDomain.ItemRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*requestDomain.ItemRequest
	for _, r := range f.requests {
		if r.RequesterID() == requesterID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	return out, nil
}

func (f *fakeRequestRepo) FindOthers(_ context.Context, requesterID uuid.UUID, page domain.PageRequest) ([]*requestDomain.ItemRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*requestDomain.ItemRequest
	for _, r := range f.requests {
		if r.RequesterID() != requesterID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().After(out[j].CreatedAt()) })
	lo := page.Offset()
	if lo > len(out) {
		return nil, nil
	}
	hi := lo + page.Limit()
	if hi > len(out) {
		hi = len(out)
	}
	return out[lo:hi], nil
}

// --- event publisher fake ---

type fakePublisher struct {
	mu     sync.Mutex
	events []kafka.CloudEvent
}

func (f *fakePublisher) PublishEvent(_ context.Context, _ string, event kafka.CloudEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) Types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, len(f.events))
	for i, e := range f.events {
		types[i] = e.Type
	}
	return types
}
