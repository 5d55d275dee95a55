// Package prefs reads and writes user-specific application data.
//
// An application identifies itself with an AppInfo and addresses its data
// with hierarchical string keys ("options/graphics", "saves/quicksave").
// Where the data lands on disk is the library's problem: keys map to files
// under an OS-appropriate per-user directory, values are serialized with a
// pluggable codec (JSON by default), and writes are atomic.
//
//	app := prefs.AppInfo{Name: "awesome-app", Author: "dedicated-dev"}
//
//	faves := prefs.Map{"color": "blue", "language": "Go"}
//	if err := faves.Save(app, "tests/docs/basic-example"); err != nil {
//		log.Fatal(err)
//	}
//
//	loaded, err := prefs.LoadMap(app, "tests/docs/basic-example")
//
// Any value that serializes with the chosen codec can be stored, not just
// maps:
//
//	type PlayerData struct {
//		Level  int     `json:"level"`
//		Health float64 `json:"health"`
//	}
//
//	store, _ := prefs.New(app)
//	_ = store.Save("saves/quicksave", PlayerData{Level: 2, Health: 0.75})
//
// For encrypted storage see package secure.
package prefs
