package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/xiubox/asset-manager/archive"
)

func main() {
	var (
		out  = flag.String("out", "", "Archive file to write")
		root = flag.String("C", "", "Resolve inputs relative to this directory")
		list = flag.Bool("list", false, "List an archive instead of building one")
	)
	flag.Parse()

	if *list {
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "Usage: pack -list <archive>")
			os.Exit(1)
		}
		if err := listArchive(flag.Arg(0)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *out == "" || flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: pack -out <archive> [-C dir] <file|dir>...")
		fmt.Fprintln(os.Stderr, "       pack -list <archive>")
		os.Exit(1)
	}

	if err := build(*out, *root, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func build(outPath, root string, args []string) error {
	b := archive.NewBuilder()
	for _, arg := range args {
		p := arg
		if root != "" {
			p = filepath.Join(root, arg)
		}
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			if err := addFile(b, root, p); err != nil {
				return err
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			return addFile(b, root, path)
		})
		if err != nil {
			return err
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	written, err := b.WriteTo(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("write archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %s: %d entries, %d bytes\n", outPath, b.Len(), written)
	return nil
}

// addFile stores path under its root-relative, slash-separated name so
// archives built on Windows and Unix index identically.
func addFile(b *archive.Builder, root, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	name := path
	if root != "" {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		name = rel
	}
	if err := b.Add(filepath.ToSlash(name), data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func listArchive(path string) error {
	a, closer, err := archive.OpenFile(path)
	if err != nil {
		return err
	}
	defer closer.Close()

	fmt.Printf("%s: %d entries, created %s\n", path, a.Len(), a.Created().Format(time.RFC3339))
	for _, name := range a.Names() {
		e, _ := a.Stat(name)
		fmt.Printf("%10d %10d  %s\n", e.Size, e.CompressedSize, name)
	}
	return nil
}
