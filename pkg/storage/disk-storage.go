package storage

import (
	"compress/gzip"
	"errors"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/bytedance/sonic"
	"github.com/kubbkoz/MTSTORE-Next/pkg/catalog"
	"github.com/kubbkoz/MTSTORE-Next/pkg/types"
)

const productsFile = "products.json.gz"
const categoriesFile = "categories.json"

var api = sonic.ConfigStd

// LoadCatalog reads the persisted products and navigation categories. A
// missing categories file is not an error, categories are then discovered
// from the products.
func (d *DiskStorage) LoadCatalog() (*catalog.Catalog, error) {
	products, err := d.LoadProducts()
	if err != nil {
		return nil, err
	}
	categories := make([]catalog.Category, 0)
	if err = d.LoadJson(&categories, categoriesFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	log.Printf("Loaded %d products and %d categories", len(products), len(categories))
	return catalog.New(products, categories), nil
}

func (d *DiskStorage) SaveCatalog(c *catalog.Catalog) error {
	if err := d.SaveProducts(c.Products()); err != nil {
		return err
	}
	return d.SaveJson(c.Defined(), categoriesFile)
}

// LoadProducts streams one product per json value from the gzipped
// products file.
func (d *DiskStorage) LoadProducts() ([]types.Product, error) {
	fileName, _ := d.GetFileName(productsFile)
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer runtime.GC()
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer zipReader.Close()

	decoder := api.NewDecoder(zipReader)
	products := make([]types.Product, 0)
	for {
		var p types.Product
		if err = decoder.Decode(&p); err != nil {
			break
		}
		products = append(products, p)
	}
	if errors.Is(err, io.EOF) {
		return products, nil
	}
	return products, err
}

func (d *DiskStorage) SaveProducts(products []*types.Product) error {
	if err := d.ensureFolder(); err != nil {
		return err
	}
	fileName, tmpFileName := d.GetFileName(productsFile)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	zipWriter := gzip.NewWriter(file)
	enc := api.NewEncoder(zipWriter)
	for _, p := range products {
		if err = enc.Encode(p); err != nil {
			break
		}
	}
	if closeErr := zipWriter.Close(); err == nil {
		err = closeErr
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}

	if err = os.Rename(tmpFileName, fileName); err != nil {
		log.Printf("Error renaming file: %v", err)
		return err
	}
	log.Printf("Saved %d products to %s", len(products), fileName)
	return nil
}

// StreamContent copies a stored file as is, used for catalog exports.
func (d *DiskStorage) StreamContent(w io.Writer, fileName string) (int64, error) {
	osFileName, _ := d.GetFileName(fileName)
	file, err := os.Open(osFileName)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	return file.WriteTo(w)
}

func (d *DiskStorage) StreamProducts(w io.Writer) (int64, error) {
	return d.StreamContent(w, productsFile)
}

func (d *DiskStorage) SaveGzippedJson(data any, filename string) error {
	if err := d.ensureFolder(); err != nil {
		return err
	}
	fileName, tmpFileName := d.GetFileName(filename)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	zipWriter := gzip.NewWriter(file)
	err = api.NewEncoder(zipWriter).Encode(data)
	if closeErr := zipWriter.Close(); err == nil {
		err = closeErr
	}
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}

	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) LoadGzippedJson(data any, filename string) error {
	name, _ := d.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	zipReader, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer zipReader.Close()

	err = api.NewDecoder(zipReader).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func (d *DiskStorage) SaveJson(data any, name string) error {
	if err := d.ensureFolder(); err != nil {
		return err
	}
	fileName, tmpFileName := d.GetFileName(name)

	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	err = api.NewEncoder(file).Encode(data)
	file.Close()
	if err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}

	return os.Rename(tmpFileName, fileName)
}

func (d *DiskStorage) LoadJson(data any, filename string) error {
	name, _ := d.GetFileName(filename)
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	defer file.Close()

	err = api.NewDecoder(file).Decode(data)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
