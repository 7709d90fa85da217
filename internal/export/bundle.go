/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"archive/zip"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"geareye/internal/version"
)

// ManifestName is the bundle entry describing the other entries.
const ManifestName = "manifest.yaml"

// BundleFile is one entry of a bundle.
type BundleFile struct {
	Name   string
	Format string
	Data   []byte
}

// BundleManifest is written as manifest.yaml at the root of the archive.
type BundleManifest struct {
	Generator  string          `yaml:"generator"`
	ConfigHash string          `yaml:"config_hash,omitempty"`
	Files      []ManifestEntry `yaml:"files"`
}

type ManifestEntry struct {
	Name   string `yaml:"name"`
	Format string `yaml:"format"`
	Size   int    `yaml:"size"`
	SHA256 string `yaml:"sha256"`
}

// WriteBundle writes files into a ZIP archive followed by a manifest
// listing their sizes and checksums. Entry order follows files.
func WriteBundle(w io.Writer, files []BundleFile, configHash string) error {
	zw := zip.NewWriter(w)
	m := BundleManifest{Generator: version.String(), ConfigHash: configHash}
	for _, f := range files {
		if f.Name == "" || f.Name == ManifestName {
			_ = zw.Close()
			return fmt.Errorf("invalid bundle entry name %q", f.Name)
		}
		if err := addZipFile(zw, f.Name, f.Data); err != nil {
			_ = zw.Close()
			return fmt.Errorf("add %s: %w", f.Name, err)
		}
		sum := sha256.Sum256(f.Data)
		m.Files = append(m.Files, ManifestEntry{
			Name:   f.Name,
			Format: f.Format,
			Size:   len(f.Data),
			SHA256: hex.EncodeToString(sum[:]),
		})
	}
	manifest, err := yaml.Marshal(m)
	if err != nil {
		_ = zw.Close()
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := addZipFile(zw, ManifestName, manifest); err != nil {
		_ = zw.Close()
		return fmt.Errorf("add manifest: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalize zip: %w", err)
	}
	return nil
}

func addZipFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
