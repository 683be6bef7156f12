// Package records holds the per-tax-year category record stores: donations,
// super contributions, UPP entries, and self-education records. Stores are
// plain CRUD containers; every mutation is copy-on-write so callers always
// hold a consistent snapshot.
package records

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/eeandrelle/tally/internal/model"
	"github.com/eeandrelle/tally/internal/taxyear"
)

// UnknownRecordError reports an ID absent from a record store.
type UnknownRecordError struct {
	Collection string
	ID         string
}

func (e UnknownRecordError) Error() string {
	return fmt.Sprintf("unknown %s record %s", e.Collection, e.ID)
}

// New returns an empty record set for a tax year.
func New(year taxyear.Year) model.RecordSet {
	return model.RecordSet{TaxYear: string(year)}
}

func appended[T any](items []T, item T) []T {
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item)
}

func replaced[T any](items []T, id string, item T, idOf func(T) string, collection string) ([]T, error) {
	out := make([]T, len(items))
	copy(out, items)
	for i := range out {
		if idOf(out[i]) == id {
			out[i] = item
			return out, nil
		}
	}
	return nil, UnknownRecordError{Collection: collection, ID: id}
}

func removed[T any](items []T, id string, idOf func(T) string, collection string) ([]T, error) {
	for i := range items {
		if idOf(items[i]) == id {
			out := make([]T, 0, len(items)-1)
			out = append(out, items[:i]...)
			return append(out, items[i+1:]...), nil
		}
	}
	return nil, UnknownRecordError{Collection: collection, ID: id}
}

func ensureID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// AddDonation appends a donation, assigning an ID when absent.
func AddDonation(rs model.RecordSet, d model.Donation) model.RecordSet {
	d.ID = ensureID(d.ID)
	rs.Donations = appended(rs.Donations, d)
	return rs
}

// UpdateDonation replaces the donation with the same ID.
func UpdateDonation(rs model.RecordSet, d model.Donation) (model.RecordSet, error) {
	out, err := replaced(rs.Donations, d.ID, d, func(x model.Donation) string { return x.ID }, "donation")
	if err != nil {
		return rs, err
	}
	rs.Donations = out
	return rs, nil
}

// RemoveDonation deletes a donation by ID.
func RemoveDonation(rs model.RecordSet, id string) (model.RecordSet, error) {
	out, err := removed(rs.Donations, id, func(x model.Donation) string { return x.ID }, "donation")
	if err != nil {
		return rs, err
	}
	rs.Donations = out
	return rs, nil
}

// AddSuperContribution appends a super contribution, assigning an ID when absent.
func AddSuperContribution(rs model.RecordSet, c model.SuperContribution) model.RecordSet {
	c.ID = ensureID(c.ID)
	rs.SuperContribs = appended(rs.SuperContribs, c)
	return rs
}

// UpdateSuperContribution replaces the contribution with the same ID.
func UpdateSuperContribution(rs model.RecordSet, c model.SuperContribution) (model.RecordSet, error) {
	out, err := replaced(rs.SuperContribs, c.ID, c, func(x model.SuperContribution) string { return x.ID }, "super contribution")
	if err != nil {
		return rs, err
	}
	rs.SuperContribs = out
	return rs, nil
}

// RemoveSuperContribution deletes a contribution by ID.
func RemoveSuperContribution(rs model.RecordSet, id string) (model.RecordSet, error) {
	out, err := removed(rs.SuperContribs, id, func(x model.SuperContribution) string { return x.ID }, "super contribution")
	if err != nil {
		return rs, err
	}
	rs.SuperContribs = out
	return rs, nil
}

// AddUPPEntry appends a UPP entry, assigning an ID when absent.
func AddUPPEntry(rs model.RecordSet, e model.UPPEntry) model.RecordSet {
	e.ID = ensureID(e.ID)
	rs.UPPEntries = appended(rs.UPPEntries, e)
	return rs
}

// RemoveUPPEntry deletes a UPP entry by ID.
func RemoveUPPEntry(rs model.RecordSet, id string) (model.RecordSet, error) {
	out, err := removed(rs.UPPEntries, id, func(x model.UPPEntry) string { return x.ID }, "UPP entry")
	if err != nil {
		return rs, err
	}
	rs.UPPEntries = out
	return rs, nil
}

// AddEducationExpense appends a self-education expense, assigning an ID when absent.
func AddEducationExpense(rs model.RecordSet, e model.EducationExpense) model.RecordSet {
	e.ID = ensureID(e.ID)
	rs.EducationExpenses = appended(rs.EducationExpenses, e)
	return rs
}

// RemoveEducationExpense deletes an expense by ID.
func RemoveEducationExpense(rs model.RecordSet, id string) (model.RecordSet, error) {
	out, err := removed(rs.EducationExpenses, id, func(x model.EducationExpense) string { return x.ID }, "education expense")
	if err != nil {
		return rs, err
	}
	rs.EducationExpenses = out
	return rs, nil
}

// AddCourse appends a course, assigning an ID when absent.
func AddCourse(rs model.RecordSet, c model.Course) model.RecordSet {
	c.ID = ensureID(c.ID)
	rs.Courses = appended(rs.Courses, c)
	return rs
}

// AddEducationAsset appends a depreciating asset, assigning an ID when absent.
func AddEducationAsset(rs model.RecordSet, a model.EducationAsset) model.RecordSet {
	a.ID = ensureID(a.ID)
	rs.EducationAssets = appended(rs.EducationAssets, a)
	return rs
}

// RemoveEducationAsset deletes an asset by ID.
func RemoveEducationAsset(rs model.RecordSet, id string) (model.RecordSet, error) {
	out, err := removed(rs.EducationAssets, id, func(x model.EducationAsset) string { return x.ID }, "education asset")
	if err != nil {
		return rs, err
	}
	rs.EducationAssets = out
	return rs, nil
}
