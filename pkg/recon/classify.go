package recon

import (
	"github.com/wjleong/sheet-recon/pkg/exclusion"
	"github.com/wjleong/sheet-recon/pkg/model"
	"github.com/wjleong/sheet-recon/pkg/normalize"
	"github.com/wjleong/sheet-recon/pkg/schema"
)

// recordKeys holds one record's canonical comparison keys. An empty key
// means the role is absent on the record (or the column is absent from the
// batch entirely).
type recordKeys struct {
	identity string
	email    string
	phone    string
}

// computeKeys derives canonical keys for every record in batch order.
func computeKeys(b *model.Batch, cols schema.Columns) []recordKeys {
	keys := make([]recordKeys, len(b.Records))
	for i, rec := range b.Records {
		if cols.Identity != "" {
			if v := rec.Get(cols.Identity); v.Present() {
				keys[i].identity = normalize.Identity(v.String())
			}
		}
		if cols.Email != "" {
			if v := rec.Get(cols.Email); v.Present() {
				keys[i].email = normalize.Email(v.String())
			}
		}
		if cols.Phone != "" {
			if v := rec.Get(cols.Phone); v.Present() {
				keys[i].phone = normalize.Phone(v.String())
			}
		}
	}
	return keys
}

// classify assigns each record its final status, exactly once. Control-list
// matches take precedence over duplicates; among duplicate kinds identity
// beats email beats phone, matching field-check order. Duplicate detection
// is first-seen-wins over the whole batch: every record's keys count as
// seen no matter how the record itself is classified.
func classify(keys []recordKeys, ix *exclusion.Index) []model.FinalStatus {
	statuses := make([]model.FinalStatus, len(keys))

	seenIdentity := make(map[string]struct{})
	seenEmail := make(map[string]struct{})
	seenPhone := make(map[string]struct{})

	for i, k := range keys {
		switch {
		case ix.HasIdentity(k.identity) || ix.HasEmail(k.email) || ix.HasPhone(k.phone):
			statuses[i] = model.StatusExcludedControlList
		case seen(seenIdentity, k.identity):
			statuses[i] = model.StatusExcludedDuplicateIdentity
		case seen(seenEmail, k.email):
			statuses[i] = model.StatusExcludedDuplicateEmail
		case seen(seenPhone, k.phone):
			statuses[i] = model.StatusExcludedDuplicatePhone
		default:
			statuses[i] = model.StatusAdmitted
		}

		mark(seenIdentity, k.identity)
		mark(seenEmail, k.email)
		mark(seenPhone, k.phone)
	}

	return statuses
}

func seen(set map[string]struct{}, key string) bool {
	if key == "" {
		return false
	}
	_, ok := set[key]
	return ok
}

func mark(set map[string]struct{}, key string) {
	if key != "" {
		set[key] = struct{}{}
	}
}

// tagCategory resolves the category an excluded record is tagged with:
// identity key first, then email, then phone, stopping at the first role
// whose key maps to a category.
func tagCategory(k recordKeys, ix *exclusion.Index) model.SourceCategory {
	for _, key := range []string{k.identity, k.email, k.phone} {
		if cat := ix.Category(key); cat != model.CategoryNone {
			return cat
		}
	}
	return model.CategoryNone
}

// tagRecord back-fills the tag columns onto one excluded record: all four
// initialized empty, then at most one populated from the resolved category.
// Pure per-record mapping with no shared accumulator.
func tagRecord(rec model.Record, k recordKeys, ix *exclusion.Index) {
	for _, col := range model.TagColumns {
		rec.Set(col, model.Absent)
	}
	if cat := tagCategory(k, ix); cat != model.CategoryNone {
		rec.Set(cat.TagColumn(), model.NewValue(cat.TagValue()))
	}
}
