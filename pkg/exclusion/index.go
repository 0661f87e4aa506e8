// pkg/exclusion/index.go
package exclusion

import (
	"github.com/wjleong/sheet-recon/pkg/model"
)

// Index is the membership view over all control lists for one run: three
// canonical-key sets plus a key-to-category mapping for tagging. Built once
// per reconciliation run and read-only afterwards.
//
// Identity numbers and phone numbers share normalization and exclusion
// semantics, so every identity key is also a phone key. Email keys are a
// disjoint domain.
type Index struct {
	identity   map[string]struct{}
	email      map[string]struct{}
	phone      map[string]struct{}
	categories map[string]model.SourceCategory
}

func newIndex() *Index {
	return &Index{
		identity:   make(map[string]struct{}),
		email:      make(map[string]struct{}),
		phone:      make(map[string]struct{}),
		categories: make(map[string]model.SourceCategory),
	}
}

// HasIdentity reports whether the identity key is on a control list.
func (ix *Index) HasIdentity(key string) bool {
	_, ok := ix.identity[key]
	return key != "" && ok
}

// HasEmail reports whether the email key is on a control list.
func (ix *Index) HasEmail(key string) bool {
	_, ok := ix.email[key]
	return key != "" && ok
}

// HasPhone reports whether the phone key is on a control list.
func (ix *Index) HasPhone(key string) bool {
	_, ok := ix.phone[key]
	return key != "" && ok
}

// Category returns the source category recorded for a key, or CategoryNone.
func (ix *Index) Category(key string) model.SourceCategory {
	if key == "" {
		return model.CategoryNone
	}
	return ix.categories[key]
}

// Size returns the number of identity, email and phone keys in the index.
func (ix *Index) Size() (identity, email, phone int) {
	return len(ix.identity), len(ix.email), len(ix.phone)
}

func (ix *Index) addEmail(key string) {
	ix.email[key] = struct{}{}
}

func (ix *Index) addIdentity(key string) {
	ix.identity[key] = struct{}{}
	ix.phone[key] = struct{}{}
}

// setCategory records the category for a key. First write wins: a key
// appearing in two control lists keeps the earliest-assigned category.
func (ix *Index) setCategory(key string, cat model.SourceCategory) {
	if cat == model.CategoryNone {
		return
	}
	if _, exists := ix.categories[key]; !exists {
		ix.categories[key] = cat
	}
}
