package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rental-bff/internal/contextkeys"
	"rental-bff/internal/core/domain"
	"rental-bff/internal/core/port"
	"rental-bff/pkg/keyedlock"

	"github.com/google/uuid"
)

// WishlistUseCase - избранное посетителя. Аноним работает с локальной коллекцией,
// авторизованный пользователь - с бэкендом; полученные с сервера списки
// перезаписывают локальную копию.
type WishlistUseCase struct {
	api       port.WishlistAPIPort
	storage   port.ClientStoragePort
	publisher port.ActivityPublisherPort
	locks     *keyedlock.Mutex[uuid.UUID]
	newID     func() string
	now       func() time.Time
}

func NewWishlistUseCase(api port.WishlistAPIPort, storage port.ClientStoragePort, publisher port.ActivityPublisherPort) *WishlistUseCase {
	return &WishlistUseCase{
		api:       api,
		storage:   storage,
		publisher: publisher,
		locks:     keyedlock.New[uuid.UUID](),
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

func (uc *WishlistUseCase) logger(ctx context.Context, name string, v domain.Visitor) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":      name,
		"visitor_id":    v.ID.String(),
		"authenticated": v.Authenticated(),
	})
}

// List возвращает все списки посетителя.
func (uc *WishlistUseCase) List(ctx context.Context, v domain.Visitor) (domain.WishlistCollection, error) {
	if !v.Authenticated() {
		return GetLocalWishlists(ctx, uc.storage, v.ID), nil
	}
	return uc.fetchRemote(ctx, v)
}

// fetchRemote читает списки с сервера и перезаписывает ими локальную копию.
func (uc *WishlistUseCase) fetchRemote(ctx context.Context, v domain.Visitor) (domain.WishlistCollection, error) {
	resp, err := uc.api.ListWishlists(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch wishlists: %w", err)
	}
	if err := resp.Data.AsError("fetch wishlists"); err != nil {
		return nil, err
	}
	lists := resp.Data.Wishlists
	if lists == nil {
		lists = domain.WishlistCollection{}
	}
	if err := SaveLocalWishlists(ctx, uc.storage, v.ID, lists); err != nil {
		uc.logger(ctx, "FetchWishlists", v).Warn("Failed to cache fetched wishlists", port.Fields{"error": err.Error()})
	}
	return lists, nil
}

// Create создает список с заданным именем.
func (uc *WishlistUseCase) Create(ctx context.Context, v domain.Visitor, name string) (*domain.Wishlist, error) {
	name, err := domain.ValidateWishlistName(name)
	if err != nil {
		return nil, err
	}
	ucLogger := uc.logger(ctx, "CreateWishlist", v)

	if v.Authenticated() {
		resp, err := uc.api.CreateWishlist(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to create wishlist: %w", err)
		}
		if err := resp.Data.AsError("create wishlist"); err != nil {
			return nil, err
		}
		created := resp.Data.Wishlist
		if created == nil {
			created = &domain.Wishlist{ListName: name, Properties: []string{}}
		}
		ucLogger.Info("Remote wishlist created", port.Fields{"wishlist_id": created.ID})
		return created, nil
	}

	unlock := uc.locks.Lock(v.ID)
	defer unlock()

	collection := GetLocalWishlists(ctx, uc.storage, v.ID)
	if collection.FindByName(name) != nil {
		return nil, domain.ErrWishlistExists
	}
	w := domain.Wishlist{ID: uc.newID(), ListName: name, Properties: []string{}, CreatedAt: uc.now().UTC()}
	collection = append(collection, w)
	if err := SaveLocalWishlists(ctx, uc.storage, v.ID, collection); err != nil {
		ucLogger.Error("Failed to save local wishlists", err, nil)
		return nil, err
	}
	ucLogger.Info("Local wishlist created", port.Fields{"wishlist_id": w.ID})
	return &w, nil
}

// Delete удаляет список.
func (uc *WishlistUseCase) Delete(ctx context.Context, v domain.Visitor, wishlistID string) error {
	if v.Authenticated() {
		resp, err := uc.api.DeleteWishlist(ctx, wishlistID)
		if err != nil {
			return fmt.Errorf("failed to delete wishlist: %w", err)
		}
		return resp.Data.AsError("delete wishlist")
	}

	return uc.mutateLocal(ctx, v, func(c *domain.WishlistCollection) error {
		if !c.Remove(wishlistID) {
			return domain.ErrWishlistNotFound
		}
		return nil
	})
}

// AddProperty добавляет объект в список; повторное добавление ничего не меняет.
func (uc *WishlistUseCase) AddProperty(ctx context.Context, v domain.Visitor, wishlistID, propertyID string) error {
	if strings.TrimSpace(propertyID) == "" {
		return domain.ErrInvalidWishlist
	}
	if v.Authenticated() {
		resp, err := uc.api.AddPropertyToWishlist(ctx, wishlistID, propertyID)
		if err != nil {
			return fmt.Errorf("failed to add property to wishlist: %w", err)
		}
		return resp.Data.AsError("add property to wishlist")
	}

	return uc.mutateLocal(ctx, v, func(c *domain.WishlistCollection) error {
		w := c.Find(wishlistID)
		if w == nil {
			return domain.ErrWishlistNotFound
		}
		w.Add(propertyID)
		return nil
	})
}

// RemoveProperty убирает объект из списка.
func (uc *WishlistUseCase) RemoveProperty(ctx context.Context, v domain.Visitor, wishlistID, propertyID string) error {
	if v.Authenticated() {
		resp, err := uc.api.RemovePropertyFromWishlist(ctx, wishlistID, propertyID)
		if err != nil {
			return fmt.Errorf("failed to remove property from wishlist: %w", err)
		}
		return resp.Data.AsError("remove property from wishlist")
	}

	return uc.mutateLocal(ctx, v, func(c *domain.WishlistCollection) error {
		w := c.Find(wishlistID)
		if w == nil {
			return domain.ErrWishlistNotFound
		}
		w.Remove(propertyID)
		return nil
	})
}

func (uc *WishlistUseCase) mutateLocal(ctx context.Context, v domain.Visitor, mutate func(c *domain.WishlistCollection) error) error {
	unlock := uc.locks.Lock(v.ID)
	defer unlock()

	collection := GetLocalWishlists(ctx, uc.storage, v.ID)
	if err := mutate(&collection); err != nil {
		return err
	}
	return SaveLocalWishlists(ctx, uc.storage, v.ID, collection)
}

// Toggle добавляет объект в "My Wishlist" или убирает его оттуда.
// Список по умолчанию создается при первом сохранении.
func (uc *WishlistUseCase) Toggle(ctx context.Context, v domain.Visitor, propertyID string) (domain.WishlistToggle, error) {
	if strings.TrimSpace(propertyID) == "" {
		return domain.WishlistToggle{}, domain.ErrInvalidWishlist
	}
	ucLogger := uc.logger(ctx, "ToggleWishlistProperty", v).WithFields(port.Fields{"property_id": propertyID})

	if v.Authenticated() {
		return uc.toggleRemote(ctx, v, propertyID)
	}

	unlock := uc.locks.Lock(v.ID)
	defer unlock()

	collection := GetLocalWishlists(ctx, uc.storage, v.ID)
	def := collection.GetOrCreateDefault(uc.newID, uc.now())
	saved := def.Toggle(propertyID)
	result := domain.WishlistToggle{WishlistID: def.ID, PropertyID: propertyID, Saved: saved}

	if err := SaveLocalWishlists(ctx, uc.storage, v.ID, collection); err != nil {
		ucLogger.Error("Failed to save local wishlists", err, nil)
		return domain.WishlistToggle{}, err
	}
	ucLogger.Info("Wishlist toggled", port.Fields{"saved": saved})
	return result, nil
}

func (uc *WishlistUseCase) toggleRemote(ctx context.Context, v domain.Visitor, propertyID string) (domain.WishlistToggle, error) {
	lists, err := uc.fetchRemote(ctx, v)
	if err != nil {
		return domain.WishlistToggle{}, err
	}

	def := lists.FindByName(domain.DefaultWishlistName)
	if def == nil {
		created, err := uc.Create(ctx, v, domain.DefaultWishlistName)
		if err != nil {
			return domain.WishlistToggle{}, err
		}
		def = created
	}

	if def.Contains(propertyID) {
		if err := uc.RemoveProperty(ctx, v, def.ID, propertyID); err != nil {
			return domain.WishlistToggle{}, err
		}
		return domain.WishlistToggle{WishlistID: def.ID, PropertyID: propertyID, Saved: false}, nil
	}
	if err := uc.AddProperty(ctx, v, def.ID, propertyID); err != nil {
		return domain.WishlistToggle{}, err
	}
	return domain.WishlistToggle{WishlistID: def.ID, PropertyID: propertyID, Saved: true}, nil
}

// IsSaved - сохранен ли объект хотя бы в одном списке.
func (uc *WishlistUseCase) IsSaved(ctx context.Context, v domain.Visitor, propertyID string) (bool, error) {
	lists, err := uc.List(ctx, v)
	if err != nil {
		return false, err
	}
	return lists.ContainsAnywhere(propertyID), nil
}

// Sync выгружает локальные списки на сервер и заменяет локальную копию ответом сервера.
func (uc *WishlistUseCase) Sync(ctx context.Context, v domain.Visitor) (domain.WishlistCollection, error) {
	if !v.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	ucLogger := uc.logger(ctx, "SyncWishlists", v)
	ucLogger.Info("Use case started", nil)

	unlock := uc.locks.Lock(v.ID)
	defer unlock()

	local := GetLocalWishlists(ctx, uc.storage, v.ID)
	payload := local.SyncPayload()

	resp, err := uc.api.SyncWishlists(ctx, payload)
	if err != nil {
		ucLogger.Error("Wishlist sync request failed", err, nil)
		return nil, fmt.Errorf("failed to sync wishlists: %w", err)
	}
	if err := resp.Data.AsError("sync wishlists"); err != nil {
		ucLogger.Warn("Backend rejected wishlist sync", port.Fields{"message": resp.Data.Message})
		return nil, err
	}

	lists := resp.Data.Wishlists
	if lists == nil {
		lists = domain.WishlistCollection{}
	}
	if err := SaveLocalWishlists(ctx, uc.storage, v.ID, lists); err != nil {
		ucLogger.Warn("Failed to cache synced wishlists", port.Fields{"error": err.Error()})
	}

	publishActivity(ctx, uc.publisher, domain.ActivityWishlistSynced, v, map[string]any{
		"uploaded": len(payload),
		"received": len(lists),
	})
	ucLogger.Info("Use case finished successfully", port.Fields{"uploaded": len(payload), "received": len(lists)})
	return lists, nil
}

// ForgetLocal удаляет локальную копию списков при выходе: после входа в ней лежат
// списки аккаунта, и они не должны достаться анониму или следующему аккаунту.
func (uc *WishlistUseCase) ForgetLocal(ctx context.Context, visitorID uuid.UUID) error {
	unlock := uc.locks.Lock(visitorID)
	defer unlock()
	if err := uc.storage.Delete(ctx, domain.VisitorNamespace(visitorID), domain.KeyWishlists); err != nil {
		return fmt.Errorf("failed to clear local wishlists: %w", err)
	}
	return nil
}
