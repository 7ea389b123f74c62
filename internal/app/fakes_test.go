package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"bidboard/internal/domain/bid"
	"bidboard/internal/domain/listing"
	"bidboard/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// memStore is a shared in-memory backing for the fake repositories
type memStore struct {
	mu         sync.Mutex
	users      map[uuid.UUID]*shared.User
	listings   map[uuid.UUID]*listing.Listing
	categories map[uuid.UUID]*shared.Category
	bids       []*bid.Bid
	comments   []*shared.Comment
	watches    map[uuid.UUID]map[uuid.UUID]bool // userID -> listingID -> watching
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[uuid.UUID]*shared.User),
		listings:   make(map[uuid.UUID]*listing.Listing),
		categories: make(map[uuid.UUID]*shared.Category),
		watches:    make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *shared.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Username == user.Username {
			return shared.ErrDuplicateUsername
		}
	}
	r.store.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*shared.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if user, ok := r.store.users[id]; ok {
		return user, nil
	}
	return nil, shared.ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*shared.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, user := range r.store.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, shared.ErrUserNotFound
}

type fakeListingRepo struct{ store *memStore }

func (r *fakeListingRepo) Create(ctx context.Context, l *listing.Listing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.listings[l.ID] = l
	return nil
}

func (r *fakeListingRepo) GetByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if l, ok := r.store.listings[id]; ok {
		copied := *l
		return &copied, nil
	}
	return nil, shared.ErrListingNotFound
}

func (r *fakeListingRepo) ListActive(ctx context.Context) ([]*listing.Listing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var listings []*listing.Listing
	for _, l := range r.store.listings {
		if l.Active {
			listings = append(listings, l)
		}
	}
	sort.Slice(listings, func(i, j int) bool {
		return listings[i].CreatedAt.After(listings[j].CreatedAt)
	})
	return listings, nil
}

func (r *fakeListingRepo) ListActiveByCategory(ctx context.Context, categoryID uuid.UUID) ([]*listing.Listing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var listings []*listing.Listing
	for _, l := range r.store.listings {
		if l.Active && l.CategoryID != nil && *l.CategoryID == categoryID {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

func (r *fakeListingRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	l, ok := r.store.listings[id]
	if !ok {
		return shared.ErrListingNotFound
	}
	l.Active = active
	return nil
}

type fakeBidRepo struct{ store *memStore }

func (r *fakeBidRepo) AppendGuarded(ctx context.Context, newBid *bid.Bid) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.listings[newBid.ListingID]
	if !ok {
		return shared.ErrListingNotFound
	}
	if !l.Active {
		return shared.ErrListingClosed
	}

	currentPrice := l.StartingBid
	for _, b := range r.store.bids {
		if b.ListingID == newBid.ListingID && b.Amount.GreaterThan(currentPrice) {
			currentPrice = b.Amount
		}
	}

	if !newBid.Beats(currentPrice) {
		return shared.ErrBidTooLow
	}

	r.store.bids = append(r.store.bids, newBid)
	return nil
}

func (r *fakeBidRepo) GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*bid.Bid, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var bids []*bid.Bid
	for _, b := range r.store.bids {
		if b.ListingID == listingID {
			bids = append(bids, b)
		}
	}
	sort.Slice(bids, func(i, j int) bool {
		return bids[i].Amount.GreaterThan(bids[j].Amount)
	})
	return bids, nil
}

func (r *fakeBidRepo) GetHighestBid(ctx context.Context, listingID uuid.UUID) (*bid.Bid, error) {
	bids, _ := r.GetByListingID(ctx, listingID)
	if len(bids) == 0 {
		return nil, shared.ErrNoBidsFound
	}
	return bids[0], nil
}

type fakeCategoryRepo struct{ store *memStore }

func (r *fakeCategoryRepo) Create(ctx context.Context, category *shared.Category) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*shared.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if category, ok := r.store.categories[id]; ok {
		return category, nil
	}
	return nil, shared.ErrCategoryNotFound
}

func (r *fakeCategoryRepo) List(ctx context.Context) ([]*shared.Category, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var categories []*shared.Category
	for _, category := range r.store.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories, nil
}

type fakeCommentRepo struct{ store *memStore }

func (r *fakeCommentRepo) Append(ctx context.Context, comment *shared.Comment) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.comments = append(r.store.comments, comment)
	return nil
}

func (r *fakeCommentRepo) GetByListingID(ctx context.Context, listingID uuid.UUID) ([]*shared.Comment, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var comments []*shared.Comment
	for _, comment := range r.store.comments {
		if comment.ListingID == listingID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

type fakeWatchRepo struct{ store *memStore }

func (r *fakeWatchRepo) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.watches[userID] == nil {
		r.store.watches[userID] = make(map[uuid.UUID]bool)
	}
	r.store.watches[userID][listingID] = true
	return nil
}

func (r *fakeWatchRepo) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.watches[userID], listingID)
	return nil
}

func (r *fakeWatchRepo) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.watches[userID][listingID], nil
}

func (r *fakeWatchRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*listing.Listing, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var listings []*listing.Listing
	for listingID := range r.store.watches[userID] {
		if l, ok := r.store.listings[listingID]; ok {
			listings = append(listings, l)
		}
	}
	return listings, nil
}

// noopLocker satisfies the locker port without a Redis instance
type noopLocker struct{}

func (noopLocker) Lock(ctx context.Context, listingID uuid.UUID) (string, error) {
	return "", nil
}

func (noopLocker) Unlock(ctx context.Context, listingID uuid.UUID, token string) error {
	return nil
}

// testEnv wires all services against the shared in-memory store
type testEnv struct {
	store        *memStore
	listings     *ListingService
	bids         *BidService
	watchlist    *WatchlistService
	comments     *CommentService
	registration *RegistrationService
}

func newTestEnv() *testEnv {
	store := newMemStore()
	listingRepo := &fakeListingRepo{store: store}
	bidRepo := &fakeBidRepo{store: store}
	userRepo := &fakeUserRepo{store: store}
	categoryRepo := &fakeCategoryRepo{store: store}
	commentRepo := &fakeCommentRepo{store: store}
	watchRepo := &fakeWatchRepo{store: store}
	logger := zerolog.Nop()

	return &testEnv{
		store: store,
		listings: NewListingService(ListingServiceParams{
			ListingRepo:  listingRepo,
			BidRepo:      bidRepo,
			UserRepo:     userRepo,
			CategoryRepo: categoryRepo,
			Logger:       logger,
		}),
		bids: NewBidService(BidServiceParams{
			BidRepo:     bidRepo,
			ListingRepo: listingRepo,
			UserRepo:    userRepo,
			Locker:      noopLocker{},
			Logger:      logger,
		}),
		watchlist: NewWatchlistService(WatchlistServiceParams{
			WatchRepo:   watchRepo,
			ListingRepo: listingRepo,
			Logger:      logger,
		}),
		comments: NewCommentService(CommentServiceParams{
			CommentRepo: commentRepo,
			ListingRepo: listingRepo,
			UserRepo:    userRepo,
			Logger:      logger,
		}),
		registration: NewRegistrationService(RegistrationServiceParams{
			UserRepo: userRepo,
			Logger:   logger,
		}),
	}
}

func (e *testEnv) seedUser(username string) *shared.User {
	user := &shared.User{
		ID:        uuid.New(),
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: time.Now(),
	}
	e.store.users[user.ID] = user
	return user
}

func (e *testEnv) seedListing(author *shared.User, startingBid string) *listing.Listing {
	l := &listing.Listing{
		ID:          uuid.New(),
		Title:       "Vintage lamp",
		Description: "A lamp",
		StartingBid: decimal.RequireFromString(startingBid),
		Active:      true,
		AuthorID:    author.ID,
		CreatedAt:   time.Now(),
	}
	e.store.listings[l.ID] = l
	return l
}

func (e *testEnv) seedCategory(name string) *shared.Category {
	category := &shared.Category{ID: uuid.New(), Name: name}
	e.store.categories[category.ID] = category
	return category
}
