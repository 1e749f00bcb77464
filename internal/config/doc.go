// Package config loads the Rusty Words host configuration.
//
// The configuration is stored in rustywords.json next to the binary or in
// the directory passed to Load. Every field is optional; missing values
// take the defaults returned by New.
//
// # Configuration File Structure
//
//	{
//	  "server": {
//	    "host": "localhost",
//	    "port": 1420
//	  },
//	  "database": {
//	    "path": "rusty_words.db"
//	  },
//	  "static": {
//	    "dir": "public",
//	    "prefix": "/assets/"
//	  },
//	  "metrics": {
//	    "enabled": true,
//	    "path": "/metrics"
//	  },
//	  "log": {
//	    "level": "info",
//	    "format": "text"
//	  }
//	}
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
