// @title           carvalue API
// @version         1.0
// @description     Used-car price prediction service: dataset insights, cascading form options and price estimates.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /
package main

import "github.com/nekruzvatanshoev/carvalue/pkg/cmd"

func main() {
	cmd.Execute()
}
