package keybindings

import tea "github.com/charmbracelet/bubbletea"

// Action represents a specific action that can be triggered by a key
type Action string

// Define all possible actions
const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionToggleHelp Action = "toggle_help"
	ActionBack       Action = "back" // General purpose "go back" or "cancel"

	// Page navigation
	ActionPageHome    Action = "page_home"
	ActionPageSaved   Action = "page_saved"
	ActionPageProfile Action = "page_profile"
	ActionNextPage    Action = "next_page"

	// Cursor navigation
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionMoveTop    Action = "move_top"
	ActionMoveBottom Action = "move_bottom"

	// Feed actions
	ActionSelectVideo    Action = "select_video"
	ActionPrevCategory   Action = "prev_category"
	ActionNextCategory   Action = "next_category"
	ActionToggleBookmark Action = "toggle_bookmark"
	ActionRetry          Action = "retry"

	// Player actions
	ActionTogglePause Action = "toggle_pause"
	ActionClosePlayer Action = "close_player"

	// Search mode actions
	ActionEnableSearch   Action = "enable_search"
	ActionSearchComplete Action = "search_complete"
)

// ContextName represents a specific UI context in the application that has its own keybinds
type ContextName string

const (
	ContextGlobal     ContextName = "global"
	ContextPages      ContextName = "pages"
	ContextHome       ContextName = "home"
	ContextSaved      ContextName = "saved"
	ContextProfile    ContextName = "profile"
	ContextPlayer     ContextName = "player"
	ContextSearchMode ContextName = "search_mode"
	ContextHelp       ContextName = "help"
)

var ContextBindings = map[ContextName][]Binding{
	ContextGlobal:     globalBindings,
	ContextPages:      pageBindings,
	ContextHome:       homeBindings,
	ContextSaved:      savedBindings,
	ContextProfile:    profileBindings,
	ContextPlayer:     playerBindings,
	ContextSearchMode: searchModeBindings,
	ContextHelp:       helpBindings,
}

// KeyMap stores the mappings from actions to key sequences for each context
type KeyMap struct {
	Primary   string
	Secondary string // Optional alternative key
	Help      string // Description for help screen
}

// Binding maps an action to its keys and help text
type Binding struct {
	Action Action
	KeyMap KeyMap
}

// navigationBindings contains general navigation bindings for consistent navigation across the app
var navigationBindings = []Binding{
	{
		Action: ActionMoveUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "k",
			Help:      "Move cursor up",
		},
	},
	{
		Action: ActionMoveDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "j",
			Help:      "Move cursor down",
		},
	},
	{
		Action: ActionPageUp,
		KeyMap: KeyMap{
			Primary: "pgup",
			Help:    "Move up one page",
		},
	},
	{
		Action: ActionPageDown,
		KeyMap: KeyMap{
			Primary: "pgdown",
			Help:    "Move down one page",
		},
	},
	{
		Action: ActionMoveTop,
		KeyMap: KeyMap{
			Primary: "home",
			Help:    "Move top of view",
		},
	},
	{
		Action: ActionMoveBottom,
		KeyMap: KeyMap{
			Primary: "end",
			Help:    "Move bottom of view",
		},
	},
}

// globalBindings contains key bindings that work across all views
var globalBindings = []Binding{
	{
		Action: ActionQuit,
		KeyMap: KeyMap{
			Primary: "ctrl+c",
			Help:    "Quit application",
		},
	},
	{
		Action: ActionToggleHelp,
		KeyMap: KeyMap{
			Primary: "ctrl+h",
			Help:    "Toggle help screen",
		},
	},
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary: "esc",
			Help:    "Go back/cancel current action",
		},
	},
}

// pageBindings switch between the main pages.  They apply whenever no overlay or search input has focus.
var pageBindings = []Binding{
	{
		Action: ActionPageHome,
		KeyMap: KeyMap{
			Primary: "1",
			Help:    "Go to Home",
		},
	},
	{
		Action: ActionPageSaved,
		KeyMap: KeyMap{
			Primary: "2",
			Help:    "Go to Saved",
		},
	},
	{
		Action: ActionPageProfile,
		KeyMap: KeyMap{
			Primary: "3",
			Help:    "Go to Profile",
		},
	},
	{
		Action: ActionNextPage,
		KeyMap: KeyMap{
			Primary: "tab",
			Help:    "Go to next page",
		},
	},
}

// videoListBindings are shared by every page that shows a list of videos
var videoListBindings = []Binding{
	{
		Action: ActionSelectVideo,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Play selected video",
		},
	},
	{
		Action: ActionToggleBookmark,
		KeyMap: KeyMap{
			Primary: "b",
			Help:    "Save/unsave selected video",
		},
	},
	{
		Action: ActionEnableSearch,
		KeyMap: KeyMap{
			Primary:   "/",
			Secondary: "ctrl+f",
			Help:      "Search captions",
		},
	},
	{
		Action: ActionRetry,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Reload",
		},
	},
}

// homeBindings contains key bindings specific to the home feed
var homeBindings = withNavigation(append([]Binding{
	{
		Action: ActionPrevCategory,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "h",
			Help:      "Previous category",
		},
	},
	{
		Action: ActionNextCategory,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "l",
			Help:      "Next category",
		},
	},
}, videoListBindings...))

// savedBindings contains key bindings specific to the saved videos page
var savedBindings = withNavigation(append([]Binding{}, videoListBindings...))

var profileBindings = []Binding{
	{
		Action: ActionRetry,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Reload profile",
		},
	},
}

// playerBindings contains key bindings for the player overlay
var playerBindings = []Binding{
	{
		Action: ActionTogglePause,
		KeyMap: KeyMap{
			Primary: " ",
			Help:    "Play/pause",
		},
	},
	{
		Action: ActionToggleBookmark,
		KeyMap: KeyMap{
			Primary: "b",
			Help:    "Save/unsave video",
		},
	},
	{
		Action: ActionRetry,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Retry loading the video",
		},
	},
	{
		Action: ActionClosePlayer,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "q",
			Help:      "Close player",
		},
	},
}

// helpBindings contains key bindings specific to the help view
var helpBindings = withNavigation([]Binding{})

// searchModeBindings contains key bindings specific for when search mode is active
var searchModeBindings = []Binding{
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary:   "esc",
			Secondary: "ctrl+f",
			Help:      "Exit search mode and remove the filter",
		},
	},
	{
		Action: ActionSearchComplete,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Apply the search filter and return control to the list",
		},
	},
}

// GetActionByKey returns just the action for a given key, or an empty Action if not found
func GetActionByKey(keyMsg tea.KeyMsg, name ContextName) Action {
	if bindings, exists := ContextBindings[name]; exists {
		key := keyMsg.String()
		for _, binding := range bindings {
			if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
				return binding.Action
			}
		}
	}
	return ""
}

// KeyLabel renders a key for display.  The space bar is the only key whose name is not printable.
func KeyLabel(key string) string {
	if key == " " {
		return "space"
	}
	return key
}

// withNavigation is a helper function to include navigation bindings in other binding sets
func withNavigation(bindings []Binding) []Binding {
	return append(append([]Binding{}, navigationBindings...), bindings...)
}
