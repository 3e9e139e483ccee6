// Copyright 2025 Edgeo SCADA
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bacnet

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// OverrideDescriptor names one extra property to read on top of the
// built-in catalogue. ObjectType and Property still come from the closed
// enums in objectid.go — an override can name any instance id of a known
// object type, including one the catalogue already declares, but never a
// new kind of object or property.
type OverrideDescriptor struct {
	Name       string     `yaml:"name"`
	ObjectType ObjectType `yaml:"object_type"`
	InstanceId uint32     `yaml:"instance"`
	Property   PropertyId `yaml:"property"`
}

// Descriptor converts o into the PropertyDescriptor the client reads.
func (o OverrideDescriptor) Descriptor() PropertyDescriptor {
	return NewPropertyDescriptor(o.ObjectType, o.InstanceId).WithReadValues(o.Property)
}

type overridesFile struct {
	Registers []OverrideDescriptor `yaml:"registers"`
}

// LoadOverrides parses a catalogue-override YAML file.
func LoadOverrides(path string) ([]OverrideDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides file: %w", err)
	}
	var f overridesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse overrides file: %w", err)
	}
	for _, r := range f.Registers {
		if !isKnownObjectType(r.ObjectType) {
			return nil, fmt.Errorf("override %q: unknown object type %d", r.Name, r.ObjectType)
		}
		switch r.Property {
		case Description, ObjectName, PresentValue:
		default:
			return nil, fmt.Errorf("override %q: unknown property id %d", r.Name, r.Property)
		}
	}
	return f.Registers, nil
}

// OverrideRegistry holds the current set of operator-supplied registers,
// refreshed in the background by WatchOverrides whenever the backing file
// changes. Unreleased Flexit registers can be added this way without a
// rebuild, as long as they reuse an existing object type and property id.
type OverrideRegistry struct {
	mu      sync.RWMutex
	entries []OverrideDescriptor
}

// Descriptors returns the current override set as read descriptors.
func (r *OverrideRegistry) Descriptors() []PropertyDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]PropertyDescriptor, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Descriptor()
	}
	return out
}

// Names returns the current override set's names, parallel to Descriptors.
func (r *OverrideRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Name
	}
	return out
}

func (r *OverrideRegistry) set(entries []OverrideDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = entries
}

// WatchOverrides loads path once and then reloads it on every write,
// following the config-reload pattern viper itself wires fsnotify with.
// The watcher goroutine exits when ctx is cancelled.
func WatchOverrides(ctx context.Context, path string, logger *slog.Logger) (*OverrideRegistry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	initial, err := LoadOverrides(path)
	if err != nil {
		return nil, err
	}
	r := &OverrideRegistry{entries: initial}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch overrides file: %w", err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				entries, err := LoadOverrides(path)
				if err != nil {
					logger.Error("reload catalogue overrides", slog.String("path", path), slog.Any("error", err))
					continue
				}
				r.set(entries)
				logger.Info("reloaded catalogue overrides", slog.String("path", path), slog.Int("count", len(entries)))
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Error("catalogue override watcher", slog.Any("error", err))
			}
		}
	}()

	return r, nil
}
