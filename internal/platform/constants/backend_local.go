// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build !production

package constants

// BackendBaseURL is the NODE REST API used by development builds.
// Build with -tags production to target the production API instead.
const BackendBaseURL = "http://localhost:8080"
