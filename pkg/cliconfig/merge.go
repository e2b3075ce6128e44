package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeString(target, &target.BrokerURL, source.BrokerURL, "brokerUrl", sourceType)
	mergeString(target, &target.BrokerToken, source.BrokerToken, "brokerToken", sourceType)
	mergeString(target, &target.BrokerUsername, source.BrokerUsername, "brokerUsername", sourceType)
	mergeString(target, &target.BrokerPassword, source.BrokerPassword, "brokerPassword", sourceType)
	mergeString(target, &target.ProviderURL, source.ProviderURL, "providerUrl", sourceType)
	mergeString(target, &target.StateSetupURL, source.StateSetupURL, "stateSetupUrl", sourceType)
	mergeString(target, &target.ProviderVersion, source.ProviderVersion, "providerVersion", sourceType)
	mergeString(target, &target.PactDir, source.PactDir, "pactDir", sourceType)
	mergeString(target, &target.HistoryPath, source.HistoryPath, "historyPath", sourceType)
	mergeString(target, &target.LogLevel, source.LogLevel, "logLevel", sourceType)
	mergeString(target, &target.LogFormat, source.LogFormat, "logFormat", sourceType)
	mergeString(target, &target.LogFile, source.LogFile, "logFile", sourceType)

	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}

	// For booleans, checking `if source.X` cannot detect an explicit false.
	// SetFields (populated during file loading and from changed flags) says
	// whether a boolean was explicitly present in the source.
	if boolIsSet(source, "publish") {
		target.Publish = source.Publish
		target.Sources["publish"] = sourceType
	}
	if boolIsSet(source, "json") {
		target.JSON = source.JSON
		target.Sources["json"] = sourceType
	}
}

func mergeString(target *CLIConfig, dst *string, value, key, sourceType string) {
	if value == "" {
		return
	}
	*dst = value
	target.Sources[key] = sourceType
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config. Without SetFields only true counts
// as set.
func boolIsSet(cfg *CLIConfig, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "publish":
		return cfg.Publish
	case "json":
		return cfg.JSON
	}
	return false
}
