package testing

import (
	"os"
	"path"
	"runtime"
)

func init() {
	// cd to the project root so relative paths (logs/, .env, sqlite files)
	// resolve the same way in every package's tests.
	//
	//   import (
	//     _ "liyu1981.xyz/minute-policy-service/pkg/testing"
	//   )

	_, filename, _, _ := runtime.Caller(0)
	dir := path.Join(path.Dir(filename), "..", "..")
	err := os.Chdir(dir)
	if err != nil {
		panic(err)
	}
}
