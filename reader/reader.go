package reader

import (
	"io"
	"io/ioutil"
	"os"

	"github.com/ztrue/tracerr"
)

// Stdin is the file name that stands for standard input.
const Stdin = "-"

// ReadSource returns the program text at from, reading stdin when from is
// "-" or empty. The returned name is what positions should report.
func ReadSource(from string, stdin io.Reader) (src string, name string, err error) {
	if from == "" || from == Stdin {
		data, err := ioutil.ReadAll(stdin)
		if err != nil {
			return "", "", tracerr.Wrap(err)
		}
		return string(data), "<stdin>", nil
	}

	data, err := ioutil.ReadFile(from)
	if err != nil {
		return "", "", tracerr.Wrap(err)
	}
	return string(data), from, nil
}

// Open is ReadSource for callers that want a stream.
func Open(from string, stdin io.Reader) (io.ReadCloser, string, error) {
	if from == "" || from == Stdin {
		return ioutil.NopCloser(stdin), "<stdin>", nil
	}

	handle, err := os.Open(from)
	if err != nil {
		return nil, "", tracerr.Wrap(err)
	}
	return handle, from, nil
}
