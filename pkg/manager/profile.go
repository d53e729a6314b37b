package manager

import (
	"bufio"
	"os"
	"strconv"

	"github.com/onosproject/onos-lib-go/pkg/errors"
)

// ReadProfileFile reads whitespace separated numbers from path
func ReadProfileFile(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.NotFound, "unable to open profile: %v", err)
	}
	defer f.Close()

	var values []float64
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		v, err := strconv.ParseFloat(scanner.Text(), 64)
		if err != nil {
			return nil, errors.New(errors.Invalid, "%s: value %d: %v", path, len(values), err)
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.New(errors.Invalid, "%s: %v", path, err)
	}
	return values, nil
}
