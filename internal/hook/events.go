// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package hook

// Lifecycle events emitted by the host, in the order a request sees them.
const (
	EventPluginsLoaded  = "plugins_loaded"
	EventInit           = "init"
	EventEnqueueScripts = "enqueue_scripts"
	EventHeadRender     = "head_render"
)
