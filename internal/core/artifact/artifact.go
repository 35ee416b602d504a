// Package artifact loads the fitted model files the service runs on
//
// Files are JSON exports, optionally gzip compressed. They are read once at startup
// and the resulting Bundle is never mutated
package artifact

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"time"

	"sarcasm/internal/core/classifier"
	"sarcasm/internal/core/textvec"
	perr "sarcasm/internal/platform/errors"

	"github.com/gabriel-vasile/mimetype"
	"github.com/klauspost/compress/gzip"
)

// Roles of the files in a bundle
const (
	RoleVectorizer = "vectorizer"
	RoleClassifier = "classifier"
	RoleEncoder    = "encoder"
)

// Paths points at the artifact files; Encoder is optional
type Paths struct {
	Vectorizer string
	Classifier string
	Encoder    string
}

// Options control load time validation
type Options struct {
	// ExtraFeatures is how many columns are appended after the text vector
	ExtraFeatures int
	// RequireEncoder fails the load when Paths.Encoder is empty
	RequireEncoder bool
	// MaxBytes caps the decompressed size of a single file, 0 means 256MB
	MaxBytes int64
}

// File describes one loaded artifact
type File struct {
	Role   string `json:"role"`
	Path   string `json:"path"`
	Format string `json:"format"`
	Bytes  int64  `json:"bytes"`
	SHA256 string `json:"sha256"`
}

// Bundle is the process wide, read only model state
type Bundle struct {
	Vectorizer textvec.Vectorizer
	Classifier classifier.Classifier
	Encoder    *classifier.LabelEncoder // nil unless loaded

	Files    []File
	LoadedAt time.Time
	extra    int
}

// NewBundle assembles a bundle from already built parts and validates the dimensions
func NewBundle(vec textvec.Vectorizer, clf classifier.Classifier, enc *classifier.LabelEncoder, extra int) (*Bundle, error) {
	b := &Bundle{Vectorizer: vec, Classifier: clf, Encoder: enc, LoadedAt: time.Now().UTC(), extra: extra}
	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Load reads, decodes and validates every artifact; any failure is a startup error
func Load(ctx context.Context, p Paths, opt Options) (*Bundle, error) {
	if opt.MaxBytes <= 0 {
		opt.MaxBytes = 256 << 20
	}
	if p.Vectorizer == "" || p.Classifier == "" {
		return nil, perr.Startupf("vectorizer and classifier paths are required")
	}
	if opt.RequireEncoder && p.Encoder == "" {
		return nil, perr.Startupf("label encoder path is required")
	}

	var (
		files  []File
		vecCfg textvec.Config
		clfCfg classifier.Config
		encCfg classifier.EncoderConfig
	)
	steps := []struct {
		role string
		path string
		dst  any
	}{
		{RoleVectorizer, p.Vectorizer, &vecCfg},
		{RoleClassifier, p.Classifier, &clfCfg},
		{RoleEncoder, p.Encoder, &encCfg},
	}
	for _, s := range steps {
		if s.path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeStartup, "artifact load cancelled")
		}
		f, err := readJSON(s.path, s.role, opt.MaxBytes, s.dst)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}

	vec, err := textvec.New(vecCfg)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStartup, "build vectorizer from %s", p.Vectorizer)
	}
	clf, err := classifier.New(clfCfg)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeStartup, "build classifier from %s", p.Classifier)
	}
	var enc *classifier.LabelEncoder
	if p.Encoder != "" {
		if enc, err = classifier.NewLabelEncoder(encCfg); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeStartup, "build label encoder from %s", p.Encoder)
		}
	}

	b, err := NewBundle(vec, clf, enc, opt.ExtraFeatures)
	if err != nil {
		return nil, err
	}
	b.Files = files
	return b, nil
}

// validate checks that the parts fit together the way they were trained
func (b *Bundle) validate() error {
	if b.Vectorizer == nil || b.Classifier == nil {
		return perr.Startupf("bundle needs a vectorizer and a classifier")
	}
	want := b.Vectorizer.Dim() + b.extra
	if got := b.Classifier.NumFeatures(); got != want {
		return perr.Startupf("classifier expects %d features but vectorizer yields %d (+%d heuristic)",
			got, b.Vectorizer.Dim(), b.extra)
	}
	if b.Encoder != nil {
		if n, k := b.Encoder.Len(), len(b.Classifier.Classes()); n != k {
			return perr.Startupf("label encoder knows %d labels but classifier has %d classes", n, k)
		}
		for _, c := range b.Classifier.Classes() {
			if _, err := b.Encoder.Decode(c); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeStartup, "classifier class %d has no label", c)
			}
		}
	}
	return nil
}

// readJSON reads path, unwraps gzip when sniffed and decodes into dst
func readJSON(path, role string, maxBytes int64, dst any) (File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return File{}, perr.Wrapf(err, perr.ErrorCodeStartup, "read %s artifact", role)
	}
	sum := sha256.Sum256(raw)
	f := File{Role: role, Path: path, Bytes: int64(len(raw)), SHA256: hex.EncodeToString(sum[:])}

	body := raw
	mt := mimetype.Detect(raw)
	switch {
	case mt.Is("application/gzip"):
		f.Format = "json+gzip"
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return File{}, perr.Wrapf(err, perr.ErrorCodeStartup, "open gzip %s artifact %s", role, path)
		}
		defer func() { _ = zr.Close() }()
		body, err = io.ReadAll(io.LimitReader(zr, maxBytes+1))
		if err != nil {
			return File{}, perr.Wrapf(err, perr.ErrorCodeStartup, "inflate %s artifact %s", role, path)
		}
	case isText(mt):
		f.Format = "json"
	default:
		return File{}, perr.Startupf("%s artifact %s is %s; export it as JSON (optionally gzip)", role, path, mt.String())
	}
	if int64(len(body)) > maxBytes {
		return File{}, perr.Startupf("%s artifact %s exceeds %d bytes", role, path, maxBytes)
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return File{}, perr.Wrapf(err, perr.ErrorCodeStartup, "decode %s artifact %s", role, path)
	}
	return f, nil
}

// isText accepts JSON and anything mimetype files under text/plain
// large exports are often only recognised as text because detection reads a prefix
func isText(mt *mimetype.MIME) bool {
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("application/json") || m.Is("text/plain") {
			return true
		}
	}
	return false
}
