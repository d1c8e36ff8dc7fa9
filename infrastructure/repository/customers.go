package repository

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
	"github.com/vfg2006/nudge-marketing-api/internal/domain"
)

// CustomerRepository lê a planilha de clientes. A planilha é lida do disco a
// cada chamada: não há cache em processo, então alterações externas ao
// arquivo aparecem na requisição seguinte.
type CustomerRepository interface {
	ListCustomers() ([]domain.Customer, error)
	GetCustomerByID(id string) (*domain.Customer, error)
	UpdateProfiles(profilesByID map[string]string) error
}

type customerRepository struct {
	path      string
	sheetName string
}

func NewCustomerRepository(path, sheetName string) CustomerRepository {
	return &customerRepository{
		path:      path,
		sheetName: sheetName,
	}
}

func (r *customerRepository) openSheet() (*excelize.File, string, error) {
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, "", errors.Wrap(err, "erro ao abrir a planilha de clientes")
	}

	sheet := r.sheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			f.Close()
			return nil, "", errors.New("planilha de clientes não possui abas")
		}
		sheet = sheets[0]
	}

	return f, sheet, nil
}

// mapColumns mapeia os nomes de campo da linha de cabeçalho para índices de coluna
func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.ReplaceAll(key, " ", "_")
		if key != "" {
			columns[key] = i
		}
	}
	return columns
}

func cellAt(row []string, idx int, ok bool) string {
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func (r *customerRepository) ListCustomers() ([]domain.Customer, error) {
	f, sheet, err := r.openSheet()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler linhas da planilha")
	}

	if len(rows) < 2 {
		return []domain.Customer{}, nil
	}

	columns := mapColumns(rows[0])

	idCol, hasID := columns["id"]
	firstNameCol, hasFirstName := columns["first_name"]
	lastNameCol, hasLastName := columns["last_name"]
	emailCol, hasEmail := columns["email"]
	cityCol, hasCity := columns["city"]
	profileCol, hasProfile := columns["profile"]
	notesCol, hasNotes := columns["notes"]

	customers := make([]domain.Customer, 0, len(rows)-1)
	for _, row := range rows[1:] {
		customer := domain.Customer{
			ID:        cellAt(row, idCol, hasID),
			FirstName: cellAt(row, firstNameCol, hasFirstName),
			LastName:  cellAt(row, lastNameCol, hasLastName),
			Email:     cellAt(row, emailCol, hasEmail),
			City:      cellAt(row, cityCol, hasCity),
			Profile:   cellAt(row, profileCol, hasProfile),
			Notes:     cellAt(row, notesCol, hasNotes),
		}

		// Linhas sem identificador e sem e-mail são ignoradas
		if customer.ID == "" && customer.Email == "" {
			continue
		}

		customers = append(customers, customer)
	}

	return customers, nil
}

func (r *customerRepository) GetCustomerByID(id string) (*domain.Customer, error) {
	customers, err := r.ListCustomers()
	if err != nil {
		return nil, err
	}

	for _, customer := range customers {
		if customer.ID == id {
			return &customer, nil
		}
	}

	return nil, nil
}

// UpdateProfiles grava os perfis gerados de volta na coluna profile da
// planilha. A gravação substitui o arquivo inteiro, como toda escrita aqui.
func (r *customerRepository) UpdateProfiles(profilesByID map[string]string) error {
	if len(profilesByID) == 0 {
		return nil
	}

	f, sheet, err := r.openSheet()
	if err != nil {
		return err
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return errors.Wrap(err, "erro ao ler linhas da planilha")
	}

	if len(rows) < 1 {
		return errors.New("planilha de clientes sem cabeçalho")
	}

	columns := mapColumns(rows[0])
	idCol, hasID := columns["id"]
	profileCol, hasProfile := columns["profile"]
	if !hasID || !hasProfile {
		return errors.New("planilha de clientes sem coluna id ou profile")
	}

	for i, row := range rows[1:] {
		id := cellAt(row, idCol, true)
		profile, ok := profilesByID[id]
		if !ok {
			continue
		}

		// Linhas da planilha são 1-based e a primeira é o cabeçalho
		cell, err := excelize.CoordinatesToCellName(profileCol+1, i+2)
		if err != nil {
			return errors.Wrap(err, "erro ao calcular célula da planilha")
		}

		if err := f.SetCellValue(sheet, cell, profile); err != nil {
			return errors.Wrap(err, "erro ao escrever perfil na planilha")
		}
	}

	if err := f.Save(); err != nil {
		return errors.Wrap(err, "erro ao salvar a planilha de clientes")
	}

	return nil
}
