package ingest

import "SalesIngest/internal/sales"

// Directory maps layouts and declared ids to the configured companies.
type Directory struct {
	companies []sales.Company
}

func NewDirectory(companies ...sales.Company) *Directory {
	return &Directory{companies: append([]sales.Company(nil), companies...)}
}

// ByLayout returns the first company reporting in layout l.
func (d *Directory) ByLayout(l sales.Layout) (sales.Company, bool) {
	if d == nil || l == sales.LayoutUnknown {
		return sales.Company{}, false
	}
	for _, c := range d.companies {
		if c.Layout == l {
			return c, true
		}
	}
	return sales.Company{}, false
}

func (d *Directory) ByID(id int64) (sales.Company, bool) {
	if d == nil {
		return sales.Company{}, false
	}
	for _, c := range d.companies {
		if c.ID == id {
			return c, true
		}
	}
	return sales.Company{}, false
}

func (d *Directory) Companies() []sales.Company {
	if d == nil {
		return nil
	}
	return append([]sales.Company(nil), d.companies...)
}
