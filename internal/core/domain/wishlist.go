package domain

import (
	"strings"
	"time"
)

// DefaultWishlistName - список по умолчанию, создается лениво.
const DefaultWishlistName = "My Wishlist"

// Wishlist - именованная подборка объектов пользователя.
type Wishlist struct {
	ID         string    `json:"id"`
	ListName   string    `json:"list_name"`
	Properties []string  `json:"properties"`
	CreatedAt  time.Time `json:"created_at"`
}

// Contains - линейная проверка принадлежности объекта списку.
func (w Wishlist) Contains(propertyID string) bool {
	for _, id := range w.Properties {
		if id == propertyID {
			return true
		}
	}
	return false
}

// Add добавляет объект, если его еще нет. Возвращает true, если список изменился.
func (w *Wishlist) Add(propertyID string) bool {
	if propertyID == "" || w.Contains(propertyID) {
		return false
	}
	w.Properties = append(w.Properties, propertyID)
	return true
}

// Remove удаляет все вхождения объекта. Возвращает true, если список изменился.
func (w *Wishlist) Remove(propertyID string) bool {
	kept := make([]string, 0, len(w.Properties))
	removed := false
	for _, id := range w.Properties {
		if id == propertyID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	w.Properties = kept
	return removed
}

// Toggle добавляет объект, если его нет, иначе удаляет. Возвращает true при добавлении.
func (w *Wishlist) Toggle(propertyID string) bool {
	if w.Contains(propertyID) {
		w.Remove(propertyID)
		return false
	}
	w.Add(propertyID)
	return true
}

// WishlistCollection - все списки посетителя.
type WishlistCollection []Wishlist

// Find возвращает указатель на список с данным id или nil.
// Указатель действителен до следующего append в коллекцию.
func (c WishlistCollection) Find(id string) *Wishlist {
	for i := range c {
		if c[i].ID == id {
			return &c[i]
		}
	}
	return nil
}

// FindByName ищет список по точному имени.
func (c WishlistCollection) FindByName(name string) *Wishlist {
	for i := range c {
		if c[i].ListName == name {
			return &c[i]
		}
	}
	return nil
}

// GetOrCreateDefault возвращает "My Wishlist", при отсутствии добавляет его в коллекцию.
// Коллекция меняется на месте, сохранять ее должен вызывающий.
func (c *WishlistCollection) GetOrCreateDefault(newID func() string, now time.Time) *Wishlist {
	if w := c.FindByName(DefaultWishlistName); w != nil {
		return w
	}
	*c = append(*c, Wishlist{
		ID:         newID(),
		ListName:   DefaultWishlistName,
		Properties: []string{},
		CreatedAt:  now.UTC(),
	})
	return &(*c)[len(*c)-1]
}

// Remove удаляет список по id.
func (c *WishlistCollection) Remove(id string) bool {
	for i := range *c {
		if (*c)[i].ID == id {
			*c = append((*c)[:i], (*c)[i+1:]...)
			return true
		}
	}
	return false
}

// ContainsAnywhere - сохранен ли объект хотя бы в одном списке.
func (c WishlistCollection) ContainsAnywhere(propertyID string) bool {
	for _, w := range c {
		if w.Contains(propertyID) {
			return true
		}
	}
	return false
}

// Normalize схлопывает дубликаты id внутри каждого списка, сохраняя порядок.
func (c WishlistCollection) Normalize() WishlistCollection {
	for i := range c {
		seen := make(map[string]struct{}, len(c[i].Properties))
		unique := make([]string, 0, len(c[i].Properties))
		for _, id := range c[i].Properties {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
		c[i].Properties = unique
	}
	return c
}

// WishlistSyncItem - минимальная проекция для массовой выгрузки на сервер.
type WishlistSyncItem struct {
	ListName   string   `json:"list_name"`
	Properties []string `json:"properties"`
}

// SyncPayload отбрасывает id и даты: сервер сгенерирует их сам.
func (c WishlistCollection) SyncPayload() []WishlistSyncItem {
	payload := make([]WishlistSyncItem, 0, len(c))
	for _, w := range c {
		props := make([]string, len(w.Properties))
		copy(props, w.Properties)
		payload = append(payload, WishlistSyncItem{ListName: w.ListName, Properties: props})
	}
	return payload
}

// ValidateWishlistName - имя не пустое и не длиннее 100 символов.
func ValidateWishlistName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 100 {
		return "", ErrInvalidWishlist
	}
	return name, nil
}

// WishlistToggle - результат переключения объекта в списке по умолчанию.
type WishlistToggle struct {
	WishlistID string
	PropertyID string
	Saved      bool
}
