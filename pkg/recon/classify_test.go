package recon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wjleong/sheet-recon/pkg/exclusion"
	"github.com/wjleong/sheet-recon/pkg/model"
)

func buildIndex(t *testing.T, src *fakeSource) *exclusion.Index {
	t.Helper()
	b, err := exclusion.NewBuilder(src, controlTabs(), zap.NewNop())
	require.NoError(t, err)
	ix, err := b.Build(context.Background())
	require.NoError(t, err)
	return ix
}

func TestClassifyControlListBeatsDuplicate(t *testing.T) {
	ix := buildIndex(t, &fakeSource{tabs: map[string][][]string{
		"BGC": {{"777777"}},
	}})

	keys := []recordKeys{
		{identity: "777777", phone: "123456789"},
		{identity: "777777", phone: "123456789"},
	}

	statuses := classify(keys, ix)
	// Both hit the control list; neither falls through to duplicate checks
	// even though the second repeats every key.
	assert.Equal(t, model.StatusExcludedControlList, statuses[0])
	assert.Equal(t, model.StatusExcludedControlList, statuses[1])
}

func TestClassifyExcludedRecordStillMarksSeen(t *testing.T) {
	ix := buildIndex(t, &fakeSource{tabs: map[string][][]string{
		"BGC": {{"777777"}},
	}})

	keys := []recordKeys{
		{identity: "777777", phone: "123456789"},
		{identity: "888888", phone: "123456789"},
	}

	statuses := classify(keys, ix)
	assert.Equal(t, model.StatusExcludedControlList, statuses[0])
	assert.Equal(t, model.StatusExcludedDuplicatePhone, statuses[1])
}

func TestClassifyDuplicateKindOrder(t *testing.T) {
	ix := buildIndex(t, &fakeSource{tabs: map[string][][]string{}})

	keys := []recordKeys{
		{identity: "111111", email: "a@x.com", phone: "123456789"},
		{identity: "111111", email: "a@x.com", phone: "123456789"},
		{identity: "222222", email: "a@x.com", phone: "123456789"},
		{identity: "333333", email: "b@x.com", phone: "123456789"},
	}

	statuses := classify(keys, ix)
	assert.Equal(t, []model.FinalStatus{
		model.StatusAdmitted,
		model.StatusExcludedDuplicateIdentity,
		model.StatusExcludedDuplicateEmail,
		model.StatusExcludedDuplicatePhone,
	}, statuses)
}

func TestClassifyEmptyKeysNeverCollide(t *testing.T) {
	ix := buildIndex(t, &fakeSource{tabs: map[string][][]string{}})

	keys := []recordKeys{
		{email: "a@x.com"},
		{email: "b@x.com"},
		{email: "c@x.com"},
	}

	statuses := classify(keys, ix)
	for i, s := range statuses {
		assert.Equal(t, model.StatusAdmitted, s, "record %d", i)
	}
}

func TestTagCategoryRoleOrder(t *testing.T) {
	ix := buildIndex(t, &fakeSource{tabs: map[string][][]string{
		"BGC":        {{"111111"}},
		"New Intake": {{"a@x.com"}},
	}})

	// Identity category wins over the email one when both roles map.
	cat := tagCategory(recordKeys{identity: "111111", email: "a@x.com"}, ix)
	assert.Equal(t, model.CategoryBGC, cat)

	// With no identity mapping, the email role carries the tag.
	cat = tagCategory(recordKeys{identity: "999999", email: "a@x.com"}, ix)
	assert.Equal(t, model.CategoryNewIntake, cat)
}

func TestTagRecordNoCategory(t *testing.T) {
	ix := buildIndex(t, &fakeSource{tabs: map[string][][]string{}})

	rec := model.NewRecord()
	tagRecord(rec, recordKeys{identity: "111111"}, ix)

	for _, col := range model.TagColumns {
		v := rec.Get(col)
		assert.False(t, v.Present(), "tag column %q should stay empty", col)
	}
}
