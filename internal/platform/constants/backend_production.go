// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

//go:build production

package constants

// BackendBaseURL is the NODE REST API used by production builds.
const BackendBaseURL = "https://api.node-community.app"
