package folio

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

const (
	portfolioExt = ".folio"
	marketDir    = "market"
)

// Store is the file-backed persistence boundary: one JSONL file per
// portfolio, one JSON document per security price series. The engine treats
// it as opaque load/save; no durability guarantee beyond the filesystem's.
type Store struct {
	dir string
}

// NewStore opens a store rooted at dir, creating it when missing.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, marketDir), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create store at %q: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) portfolioPath(name string) string {
	return filepath.Join(s.dir, url.PathEscape(name)+portfolioExt)
}

// ListPortfolios returns the names of the stored portfolios.
func (s *Store) ListPortfolios() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), portfolioExt) {
			continue
		}
		name, err := url.PathUnescape(strings.TrimSuffix(e.Name(), portfolioExt))
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// LoadPortfolio reads and validates one portfolio.
func (s *Store) LoadPortfolio(name string) (*Portfolio, error) {
	f, err := os.Open(s.portfolioPath(name))
	if err != nil {
		return nil, fmt.Errorf("cannot open portfolio %q: %w", name, err)
	}
	defer f.Close()
	return DecodePortfolio(name, f)
}

// SavePortfolio writes one portfolio in canonical form.
func (s *Store) SavePortfolio(p *Portfolio) error {
	f, err := os.Create(s.portfolioPath(p.Name()))
	if err != nil {
		return fmt.Errorf("cannot write portfolio %q: %w", p.Name(), err)
	}
	if err := EncodePortfolio(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DeletePortfolio removes a portfolio and all its ledgers. Ledgers are never
// deleted individually, only as part of whole-portfolio deletion.
func (s *Store) DeletePortfolio(name string) error {
	return os.Remove(s.portfolioPath(name))
}

// LoadMarketData reads every stored price series into one MarketData.
// A missing market directory yields an empty universe, not an error.
func (s *Store) LoadMarketData() (*MarketData, error) {
	m := NewMarketData()
	dir := filepath.Join(s.dir, marketDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		f, err := os.Open(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		sec, err := DecodeSecurity(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("in %s: %w", e.Name(), err)
		}
		m.Add(sec)
	}
	return m, nil
}

// SaveMarketData writes every security's price series.
func (s *Store) SaveMarketData(m *MarketData) error {
	dir := filepath.Join(s.dir, marketDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, ticker := range m.Tickers() {
		path := filepath.Join(dir, url.PathEscape(ticker)+".json")
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := EncodeSecurity(f, m.Get(ticker)); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
