/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package storage implements artifact persistence.
// It writes rendered files transactionally (temp file plus rename) and manages the
// embedded SQLite render cache at <user cache dir>/geareye/renders.sqlite.
// Cache rows are keyed by the configuration hash and output format; the cache is disposable
// and can be deleted at any time.
package storage
