package importer_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Licencias-api/internal/domain/entity"
)

// Fakes en memoria de los puertos de persistencia. Devuelven (nil, nil)
// cuando no encuentran, igual que los adaptadores de PostgreSQL.

type fakeItems struct {
	byCode    map[string]*entity.Item
	byExt     map[string]*entity.Item
	created   []*entity.Item
	createErr error
}

func newFakeItems() *fakeItems {
	return &fakeItems{byCode: map[string]*entity.Item{}, byExt: map[string]*entity.Item{}}
}

func (f *fakeItems) Create(item *entity.Item) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, item)
	f.byCode[item.Code] = item
	return nil
}

func (f *fakeItems) GetByCode(_, code string) (*entity.Item, error) {
	return f.byCode[code], nil
}

func (f *fakeItems) GetByExternalArticleNumber(_, ext string) (*entity.Item, error) {
	return f.byExt[ext], nil
}

func (f *fakeItems) ListByCompany(string, int, int) ([]*entity.Item, error) { return nil, nil }

type fakeCustomers struct {
	byRef map[string]*entity.Customer
}

func (f *fakeCustomers) Create(*entity.Customer) error                { return nil }
func (f *fakeCustomers) GetByID(string) (*entity.Customer, error)     { return nil, nil }
func (f *fakeCustomers) GetByReferenceNumber(_, ref string) (*entity.Customer, error) {
	return f.byRef[ref], nil
}
func (f *fakeCustomers) ListByCompany(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}

type fakeCompanies struct {
	company *entity.Company
}

func (f *fakeCompanies) GetByID(id string) (*entity.Company, error) {
	if f.company != nil && f.company.ID == id {
		return f.company, nil
	}
	return nil, nil
}

type fakeAccounts struct {
	byName map[string]*entity.Account
}

func (f *fakeAccounts) GetByName(_, name string) (*entity.Account, error) {
	if f.byName == nil {
		return nil, nil
	}
	return f.byName[name], nil
}

type fakeCurrencies struct {
	known map[string]bool
	rates map[string]decimal.Decimal // clave "FROM/TO"
}

func (f *fakeCurrencies) Exists(code string) (bool, error) { return f.known[code], nil }

func (f *fakeCurrencies) GetExchangeRate(from, to string, _ time.Time) (*decimal.Decimal, error) {
	if rate, ok := f.rates[from+"/"+to]; ok {
		return &rate, nil
	}
	return nil, nil
}

func (f *fakeCurrencies) CreateExchange(*entity.CurrencyExchange) error { return nil }

type fakeInvoices struct {
	saved     []*entity.SalesInvoice
	createErr error
}

func (f *fakeInvoices) Create(inv *entity.SalesInvoice) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.saved = append(f.saved, inv)
	return nil
}

func (f *fakeInvoices) GetByID(string) (*entity.SalesInvoice, error) { return nil, nil }
func (f *fakeInvoices) ListByCustomer(string, int, int) ([]*entity.SalesInvoice, error) {
	return nil, nil
}

type fakeSettings struct {
	settings *entity.ImportSettings
	history  []*entity.ImportHistoryEntry
	results  []*entity.ImportResultEntry
}

func (f *fakeSettings) GetByID(id string) (*entity.ImportSettings, error) {
	if f.settings != nil && f.settings.ID == id {
		return f.settings, nil
	}
	return nil, nil
}

func (f *fakeSettings) AddHistory(e *entity.ImportHistoryEntry) error {
	f.history = append(f.history, e)
	return nil
}

func (f *fakeSettings) AddResult(e *entity.ImportResultEntry) error {
	f.results = append(f.results, e)
	return nil
}

func (f *fakeSettings) GetResult(_, resultID string) (*entity.ImportResultEntry, error) {
	for _, r := range f.results {
		if r.ID == resultID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeSettings) ListResults(string, int, int) ([]*entity.ImportResultEntry, error) {
	return f.results, nil
}

type fakeFiles struct {
	folders   map[string]string
	files     []*entity.StoredFile
	folderErr error
	saveErr   error
}

func (f *fakeFiles) EnsureFolder(name string) (string, error) {
	if f.folderErr != nil {
		return "", f.folderErr
	}
	if f.folders == nil {
		f.folders = map[string]string{}
	}
	if id, ok := f.folders[name]; ok {
		return id, nil
	}
	id := "folder-" + name
	f.folders[name] = id
	return id, nil
}

func (f *fakeFiles) Save(file *entity.StoredFile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.files = append(f.files, file)
	return nil
}
