package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sir_venger/upload_lite/pkg/uploadclient"
)

// main загружает файлы из аргументов и печатает сгенерированные имена, по одному на строку.
func main() {
	var (
		baseURL  = flag.String("url", envOr("UPLOAD_URL", "http://localhost:8080"), "upload service base URL")
		key      = flag.String("key", os.Getenv("UPLOAD_KEY"), "upload key (Authorization header)")
		status   = flag.Bool("status", false, "print service status and exit")
		progress = flag.Bool("progress", false, "draw upload progress on stderr")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var opts []uploadclient.Option
	if *progress {
		opts = append(opts, uploadclient.WithProgress(os.Stderr))
	}
	client := uploadclient.New(*baseURL, *key, opts...)

	if *status {
		s, err := client.Status(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(s)
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	files, closeAll, err := openFiles(flag.Args())
	if err != nil {
		log.Fatal(err)
	}
	defer closeAll()

	names, err := client.Upload(ctx, files...)
	if errors.Is(err, uploadclient.ErrUnauthorized) {
		closeAll()
		log.Fatal("upload key rejected by server")
	}
	if err != nil {
		closeAll()
		log.Fatal(err)
	}

	for _, n := range names {
		fmt.Println(n)
	}
}

func openFiles(paths []string) ([]uploadclient.File, func(), error) {
	var closers []io.Closer
	closeAll := func() {
		for _, c := range closers {
			_ = c.Close()
		}
		closers = nil
	}

	files := make([]uploadclient.File, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		closers = append(closers, f)

		info, err := f.Stat()
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		files = append(files, uploadclient.File{Name: filepath.Base(p), Reader: f, Size: info.Size()})
	}

	return files, closeAll, nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
