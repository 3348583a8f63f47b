// Command sdtid reads an SDTID software-token provisioning file and
// prints the current passcode, or manages an encrypted token cache via
// its export/import/batch subcommands.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/absfs/absfs"

	"github.com/sdtid/sdtoken"
	"github.com/sdtid/sdtoken/batch"
	"github.com/sdtid/sdtoken/export"
)

// batchOSFilesystem is the minimal absfs.FileSystem the batch package needs
// to walk and open real files on disk, in the shape of the teacher's
// examples/*/main.go simpleFS.
type batchOSFilesystem struct{}

func (batchOSFilesystem) OpenFile(name string, flag int, perm os.FileMode) (absfs.File, error) {
	return os.OpenFile(name, flag, perm)
}
func (batchOSFilesystem) Mkdir(name string, perm os.FileMode) error    { return os.Mkdir(name, perm) }
func (batchOSFilesystem) MkdirAll(name string, perm os.FileMode) error { return os.MkdirAll(name, perm) }
func (batchOSFilesystem) Remove(name string) error                    { return os.Remove(name) }
func (batchOSFilesystem) RemoveAll(path string) error                 { return os.RemoveAll(path) }
func (batchOSFilesystem) Rename(oldpath, newpath string) error        { return os.Rename(oldpath, newpath) }
func (batchOSFilesystem) Stat(name string) (os.FileInfo, error)       { return os.Stat(name) }
func (batchOSFilesystem) Chmod(name string, mode os.FileMode) error   { return os.Chmod(name, mode) }
func (batchOSFilesystem) Chtimes(name string, atime, mtime time.Time) error {
	return os.Chtimes(name, atime, mtime)
}
func (batchOSFilesystem) Chown(name string, uid, gid int) error { return os.Chown(name, uid, gid) }
func (batchOSFilesystem) Separator() uint8                      { return os.PathSeparator }
func (batchOSFilesystem) ListSeparator() uint8                  { return os.PathListSeparator }
func (batchOSFilesystem) Chdir(dir string) error                { return nil }
func (batchOSFilesystem) Getwd() (string, error)                { return filepath.Abs(".") }
func (batchOSFilesystem) TempDir() string                       { return os.TempDir() }
func (batchOSFilesystem) Open(name string) (absfs.File, error)  { return os.Open(name) }
func (batchOSFilesystem) Create(name string) (absfs.File, error) { return os.Create(name) }
func (batchOSFilesystem) Truncate(name string, size int64) error {
	return os.Truncate(name, size)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "export":
		runExport(os.Args[2:])
	case "import":
		runImport(os.Args[2:])
	case "batch":
		runBatch(os.Args[2:])
	default:
		runGenerate(os.Args[1:])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: sdtid <path> <pin>")
	fmt.Fprintln(os.Stderr, "       sdtid export -in <path> -pin <pin> -out <blob> -passphrase <passphrase>")
	fmt.Fprintln(os.Stderr, "       sdtid import -in <blob> -passphrase <passphrase>")
	fmt.Fprintln(os.Stderr, "       sdtid batch -dir <dir> -pin <pin>")
}

// runGenerate implements the plain two-argument form: read an SDTID file,
// build a token, and print its current passcode. Mirrors the shape of the
// original implementation's bin.rs entry point.
func runGenerate(args []string) {
	if len(args) != 2 {
		usage()
		os.Exit(2)
	}
	path, pin := args[0], args[1]

	sdtidBatch, err := sdtid.ReadFile(path)
	if err != nil {
		log.Fatalf("sdtid: failed to read %s: %v", path, err)
	}

	token, err := sdtid.FromXML(sdtidBatch, pin)
	if err != nil {
		log.Fatalf("sdtid: failed to build token: %v", err)
	}

	code, err := sdtid.Generate(token, time.Now().UTC())
	if err != nil {
		log.Fatalf("sdtid: failed to generate passcode: %v", err)
	}

	fmt.Println(code)
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	in := fs.String("in", "", "path to the .sdtid provisioning file")
	pin := fs.String("pin", "", "PIN to bind to the cached token")
	out := fs.String("out", "", "path to write the encrypted cache blob")
	passphrase := fs.String("passphrase", "", "passphrase used to encrypt the cache blob")
	fs.Parse(args)

	if *in == "" || *out == "" || *passphrase == "" {
		fs.Usage()
		os.Exit(2)
	}

	sdtidBatch, err := sdtid.ReadFile(*in)
	if err != nil {
		log.Fatalf("sdtid: failed to read %s: %v", *in, err)
	}
	token, err := sdtid.FromXML(sdtidBatch, *pin)
	if err != nil {
		log.Fatalf("sdtid: failed to build token: %v", err)
	}

	w, err := os.Create(*out)
	if err != nil {
		log.Fatalf("sdtid: failed to create %s: %v", *out, err)
	}
	defer w.Close()

	provider := export.NewArgon2idProvider([]byte(*passphrase), export.DefaultArgon2idParams())
	if err := export.Export(w, token, provider, export.CipherAES256GCM); err != nil {
		log.Fatalf("sdtid: export failed: %v", err)
	}

	log.Printf("sdtid: wrote encrypted cache blob to %s", *out)
}

func runImport(args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("in", "", "path to the encrypted cache blob")
	passphrase := fs.String("passphrase", "", "passphrase used to decrypt the cache blob")
	fs.Parse(args)

	if *in == "" || *passphrase == "" {
		fs.Usage()
		os.Exit(2)
	}

	r, err := os.Open(*in)
	if err != nil {
		log.Fatalf("sdtid: failed to open %s: %v", *in, err)
	}
	defer r.Close()

	provider := export.NewArgon2idProvider([]byte(*passphrase), export.DefaultArgon2idParams())
	token, err := export.Import(r, provider)
	if err != nil {
		log.Fatalf("sdtid: import failed: %v", err)
	}

	code, err := sdtid.Generate(token, time.Now().UTC())
	if err != nil {
		log.Fatalf("sdtid: failed to generate passcode: %v", err)
	}

	fmt.Printf("serial %s: %s\n", token.Serial(), code)
}

func runBatch(args []string) {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	dir := fs.String("dir", "", "directory to scan for .sdtid files")
	pin := fs.String("pin", "", "PIN to bind to every token in the directory")
	workers := fs.Int("workers", 0, "worker pool size (0 = batch.DefaultConfig)")
	fs.Parse(args)

	if *dir == "" {
		fs.Usage()
		os.Exit(2)
	}

	osfs := batchOSFilesystem{}
	paths, err := batch.ListSDTIDFiles(osfs, *dir)
	if err != nil {
		log.Fatalf("sdtid: failed to list %s: %v", *dir, err)
	}

	cfg := batch.DefaultConfig()
	if *workers > 0 {
		cfg.MaxWorkers = *workers
	}

	results, err := batch.Generate(osfs, paths, *pin, time.Now().UTC(), cfg)
	if err != nil {
		log.Fatalf("sdtid: batch generation failed: %v", err)
	}

	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%s: error: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Printf("%s: %s\n", r.Path, r.Code)
	}
}
