package cmd

const (
	RootCmdName  = "carvalue"
	RootCmdShort = "Used car price prediction service"
	RootCmdLong  = `carvalue serves a used-car listing dataset and prices hypothetical cars
with a pre-trained model. Settings come from flags, CARVALUE_* environment
variables, an optional .env file and an optional config file.`

	ServeCmdName  = "serve"
	ServeCmdShort = "Start the HTTP server"
	ServeCmdLong  = `Load the dataset and the model once, then serve the home, analysis and
prediction views until interrupted. A dataset or model that fails to load
stops startup with a non-zero exit code.`

	PredictCmdName  = "predict"
	PredictCmdShort = "Price one car from the command line"
	PredictCmdLong  = `Validate a car description against the dataset and print the model's
price estimate. Unset categorical flags take the first option the prediction
form would offer.`

	ImportCmdName  = "import"
	ImportCmdShort = "Copy a CSV dataset into PostgreSQL"
	ImportCmdLong  = `Read listings from a CSV file and replace the contents of the PostgreSQL
listings table with them, so serve can run with data.source=postgres.`
)
