package main

import "github.com/killallgit/scriptify/cmd"

// @title           Scriptify API
// @version         1.0.0
// @description     Record or upload audio, transcribe it and manage editable transcript sessions
// @contact.name    API Support
// @contact.url     https://github.com/killallgit/scriptify
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
